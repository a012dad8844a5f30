//go:build linux

package desktop

/*
#cgo CFLAGS: -I/usr/include
#cgo LDFLAGS: -lX11 -lXext

#include <X11/Xlib.h>
#include <X11/Xutil.h>
#include <sys/ipc.h>
#include <sys/shm.h>
#include <X11/extensions/XShm.h>
#include <stdlib.h>
#include <string.h>

typedef struct {
    void* data;
    int width;
    int height;
    int bytesPerRow;
    int error;
} ScreenCaptureResult;

typedef struct {
    Display* display;
    Window root;
    int screen;
    int width;
    int height;
    int useShm;
    XShmSegmentInfo shmInfo;
    XImage* shmImage;
} CaptureContext;

static CaptureContext g_ctx = {0};

int initX11(int displayIndex) {
    if (g_ctx.display != NULL) {
        return 0;
    }

    g_ctx.display = XOpenDisplay(NULL);
    if (g_ctx.display == NULL) {
        return 1;
    }

    g_ctx.screen = displayIndex;
    if (g_ctx.screen >= ScreenCount(g_ctx.display)) {
        g_ctx.screen = DefaultScreen(g_ctx.display);
    }

    g_ctx.root = RootWindow(g_ctx.display, g_ctx.screen);
    g_ctx.width = DisplayWidth(g_ctx.display, g_ctx.screen);
    g_ctx.height = DisplayHeight(g_ctx.display, g_ctx.screen);

    int major, minor;
    Bool pixmaps;
    if (XShmQueryVersion(g_ctx.display, &major, &minor, &pixmaps)) {
        g_ctx.useShm = 1;

        g_ctx.shmImage = XShmCreateImage(
            g_ctx.display,
            DefaultVisual(g_ctx.display, g_ctx.screen),
            DefaultDepth(g_ctx.display, g_ctx.screen),
            ZPixmap,
            NULL,
            &g_ctx.shmInfo,
            g_ctx.width,
            g_ctx.height
        );

        if (g_ctx.shmImage != NULL) {
            g_ctx.shmInfo.shmid = shmget(
                IPC_PRIVATE,
                g_ctx.shmImage->bytes_per_line * g_ctx.shmImage->height,
                IPC_CREAT | 0777
            );

            if (g_ctx.shmInfo.shmid >= 0) {
                g_ctx.shmInfo.shmaddr = g_ctx.shmImage->data = shmat(g_ctx.shmInfo.shmid, 0, 0);
                g_ctx.shmInfo.readOnly = False;

                if (XShmAttach(g_ctx.display, &g_ctx.shmInfo)) {
                    return 0;
                }
            }

            XDestroyImage(g_ctx.shmImage);
            g_ctx.shmImage = NULL;
        }
        g_ctx.useShm = 0;
    }

    return 0;
}

void cleanupX11(void) {
    if (g_ctx.shmImage != NULL) {
        XShmDetach(g_ctx.display, &g_ctx.shmInfo);
        shmdt(g_ctx.shmInfo.shmaddr);
        shmctl(g_ctx.shmInfo.shmid, IPC_RMID, 0);
        XDestroyImage(g_ctx.shmImage);
        g_ctx.shmImage = NULL;
    }

    if (g_ctx.display != NULL) {
        XCloseDisplay(g_ctx.display);
        g_ctx.display = NULL;
    }

    memset(&g_ctx, 0, sizeof(g_ctx));
}

ScreenCaptureResult captureScreen(int displayIndex) {
    ScreenCaptureResult result = {0};

    int initResult = initX11(displayIndex);
    if (initResult != 0) {
        result.error = initResult;
        return result;
    }

    XImage* image = NULL;

    if (g_ctx.useShm && g_ctx.shmImage != NULL) {
        if (!XShmGetImage(g_ctx.display, g_ctx.root, g_ctx.shmImage, 0, 0, AllPlanes)) {
            result.error = 2;
            return result;
        }
        image = g_ctx.shmImage;
    } else {
        image = XGetImage(
            g_ctx.display,
            g_ctx.root,
            0, 0,
            g_ctx.width,
            g_ctx.height,
            AllPlanes,
            ZPixmap
        );

        if (image == NULL) {
            result.error = 3;
            return result;
        }
    }

    result.width = image->width;
    result.height = image->height;
    result.bytesPerRow = result.width * 4;

    size_t dataSize = result.bytesPerRow * result.height;
    result.data = malloc(dataSize);
    if (result.data == NULL) {
        if (!g_ctx.useShm) {
            XDestroyImage(image);
        }
        result.error = 4;
        return result;
    }

    unsigned char* dst = (unsigned char*)result.data;
    int depth = image->bits_per_pixel;

    for (int y = 0; y < result.height; y++) {
        for (int x = 0; x < result.width; x++) {
            unsigned long pixel = XGetPixel(image, x, y);
            int idx = y * result.bytesPerRow + x * 4;

            if (depth == 32 || depth == 24) {
                dst[idx + 0] = (pixel >> 16) & 0xFF;
                dst[idx + 1] = (pixel >> 8) & 0xFF;
                dst[idx + 2] = pixel & 0xFF;
                dst[idx + 3] = 255;
            } else if (depth == 16) {
                dst[idx + 0] = ((pixel >> 11) & 0x1F) * 255 / 31;
                dst[idx + 1] = ((pixel >> 5) & 0x3F) * 255 / 63;
                dst[idx + 2] = (pixel & 0x1F) * 255 / 31;
                dst[idx + 3] = 255;
            }
        }
    }

    if (!g_ctx.useShm) {
        XDestroyImage(image);
    }

    return result;
}

void getScreenBoundsL(int displayIndex, int* width, int* height, int* error) {
    *error = initX11(displayIndex);
    if (*error == 0) {
        *width = g_ctx.width;
        *height = g_ctx.height;
    }
}

void freeCapture(void* data) {
    if (data != NULL) {
        free(data);
    }
}
*/
import "C"

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// x11Capturer implements FrameProducer over X11, using the MIT-SHM
// extension when available and falling back to plain XGetImage otherwise.
type x11Capturer struct {
	mu           sync.Mutex
	displayIndex int
	width        int
	height       int
	start        time.Time
}

// newX11Capturer opens the X11 display and queries its fixed bounds. DISPLAY
// must be set in the process environment; an unset DISPLAY is the caller's
// signal to fall back to the PipeWire stub instead.
func newX11Capturer(displayIndex int) (FrameProducer, error) {
	c := &x11Capturer{displayIndex: displayIndex, start: time.Now()}

	var w, h, cerr C.int
	C.getScreenBoundsL(C.int(displayIndex), &w, &h, &cerr)
	if cerr != 0 {
		return nil, translateX11Error(int(cerr))
	}
	c.width, c.height = int(w), int(h)
	return c, nil
}

func (c *x11Capturer) NextFrame(ctx context.Context) (*Frame, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	result := C.captureScreen(C.int(c.displayIndex))
	if result.error != 0 {
		return nil, translateX11Error(int(result.error))
	}
	defer C.freeCapture(result.data)

	width := int(result.width)
	height := int(result.height)
	bytesPerRow := int(result.bytesPerRow)
	dataSize := bytesPerRow * height
	raw := C.GoBytes(result.data, C.int(dataSize))

	pix := make([]byte, width*height*4)
	for y := 0; y < height; y++ {
		srcStart := y * bytesPerRow
		dstStart := y * width * 4
		copy(pix[dstStart:dstStart+width*4], raw[srcStart:srcStart+width*4])
	}

	return &Frame{
		Pix:    pix,
		Width:  width,
		Height: height,
		PTS:    time.Since(c.start).Nanoseconds(),
	}, nil
}

func (c *x11Capturer) Bounds() (width, height int) {
	return c.width, c.height
}

func (c *x11Capturer) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	C.cleanupX11()
	return nil
}

func translateX11Error(code int) error {
	switch code {
	case 1:
		return fmt.Errorf("%w: failed to open X11 display (is DISPLAY set?)", ErrNoCaptureSource)
	case 2:
		return fmt.Errorf("XShmGetImage failed")
	case 3:
		return fmt.Errorf("XGetImage failed")
	case 4:
		return fmt.Errorf("memory allocation failed")
	default:
		return fmt.Errorf("unknown X11 capture error: %d", code)
	}
}

// newPlatformCapturer selects between the X11 capturer and the PipeWire
// stub based on whether DISPLAY is set. It's the Linux half of the
// cross-platform NewScreenCapturer entry point.
func newPlatformCapturer(displayIndex int, display string) (FrameProducer, error) {
	if display == "" {
		return newPipewireStub()
	}
	return newX11Capturer(displayIndex)
}

var _ FrameProducer = (*x11Capturer)(nil)
