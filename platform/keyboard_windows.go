//go:build windows

package platform

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"unsafe"

	"golang.org/x/sys/windows"

	"clipdeck/keys"
)

var (
	setWindowsHookEx    = user32.NewProc("SetWindowsHookExW")
	callNextHookEx      = user32.NewProc("CallNextHookEx")
	unhookWindowsHookEx = user32.NewProc("UnhookWindowsHookEx")
	peekMessage         = user32.NewProc("PeekMessageW")
)

const (
	whKeyboardLL = 13
	wmKeydown    = 0x0100
	wmKeyup      = 0x0101
	wmSyskeydown = 0x0104
	wmSyskeyup   = 0x0105
	pmRemove     = 0x0001

	// LLKHF_INJECTED: set for events produced by SendInput, including
	// our own simulated paste. Those must not feed back into tracking.
	llkhfInjected = 0x10
)

type kbdllhookstruct struct {
	vkCode      uint32
	scanCode    uint32
	flags       uint32
	time        uint32
	dwExtraInfo uintptr
}

type msg struct {
	hwnd    uintptr
	message uint32
	wParam  uintptr
	lParam  uintptr
	time    uint32
	pt      struct{ x, y int32 }
}

// Virtual-key codes for the named keys the engine cares about. The
// low-level hook reports left/right modifier variants directly.
var vkNames = map[uint32]keys.Key{
	0xA4: keys.AltLeft,
	0xA5: keys.AltRight,
	0xA2: keys.CtrlLeft,
	0xA3: keys.CtrlRight,
	0xA0: keys.ShiftLeft,
	0xA1: keys.ShiftRight,
	0x5B: keys.WinLeft,
	0x5C: keys.WinRight,
	0x1B: keys.Esc,
	0x20: keys.Space,
	0x0D: keys.Enter,
	0x09: keys.Tab,
	0x08: keys.Backspace,
}

// keyName translates a virtual-key code into the engine's key identifier.
func keyName(vk uint32) keys.Key {
	if k, ok := vkNames[vk]; ok {
		return k
	}
	switch {
	case vk >= '0' && vk <= '9':
		return keys.Key(rune(vk))
	case vk >= 'A' && vk <= 'Z':
		return keys.Key(rune(vk + 'a' - 'A'))
	}
	return keys.Key(fmt.Sprintf("vk_0x%02X", vk))
}

// WindowsKeyboard implements KeySource with a WH_KEYBOARD_LL hook.
type WindowsKeyboard struct {
	mu     sync.Mutex
	events chan KeyEvent
	hook   uintptr
	done   chan struct{}
}

// NewKeySource creates the Windows raw keyboard source.
func NewKeySource() KeySource {
	return &WindowsKeyboard{}
}

// Events installs the keyboard hook and starts delivering raw events.
// The channel is buffered; if the consumer falls behind, events are
// dropped rather than blocking the hook callback.
func (k *WindowsKeyboard) Events(ctx context.Context) (<-chan KeyEvent, error) {
	k.mu.Lock()
	k.events = make(chan KeyEvent, 64)
	k.done = make(chan struct{})
	k.mu.Unlock()

	errCh := make(chan error, 1)
	go k.runHook(errCh)

	select {
	case err := <-errCh:
		if err != nil {
			return nil, err
		}
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	go func() {
		<-ctx.Done()
		close(k.done)
		if k.hook != 0 {
			unhookWindowsHookEx.Call(k.hook)
		}
	}()

	return k.events, nil
}

func (k *WindowsKeyboard) runHook(errCh chan<- error) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	hookProc := func(nCode int32, wParam uintptr, lParam uintptr) uintptr {
		if nCode >= 0 {
			kbInfo := (*kbdllhookstruct)(unsafe.Pointer(lParam))
			k.handleKeyEvent(wParam, kbInfo)
		}
		r, _, _ := callNextHookEx.Call(0, uintptr(nCode), wParam, lParam)
		return r
	}

	hook, _, err := setWindowsHookEx.Call(
		whKeyboardLL,
		windows.NewCallback(hookProc),
		0,
		0,
	)
	if hook == 0 {
		errCh <- fmt.Errorf("SetWindowsHookEx failed: %w", err)
		return
	}

	k.mu.Lock()
	k.hook = hook
	k.mu.Unlock()

	errCh <- nil

	// Message loop keeping the hook thread alive.
	var m msg
	for {
		select {
		case <-k.done:
			return
		default:
			r, _, _ := peekMessage.Call(
				uintptr(unsafe.Pointer(&m)),
				0,
				0,
				0,
				pmRemove,
			)
			if r != 0 {
				continue
			}
			runtime.Gosched()
		}
	}
}

func (k *WindowsKeyboard) handleKeyEvent(wParam uintptr, kbInfo *kbdllhookstruct) {
	if kbInfo.flags&llkhfInjected != 0 {
		return
	}

	var pressed bool
	switch wParam {
	case wmKeydown, wmSyskeydown:
		pressed = true
	case wmKeyup, wmSyskeyup:
		pressed = false
	default:
		return
	}

	select {
	case k.events <- KeyEvent{Key: keyName(kbInfo.vkCode), Pressed: pressed}:
	default:
	}
}
