//go:build windows

package platform

import (
	"fmt"
	"time"
	"unsafe"
)

var (
	sendInput      = user32.NewProc("SendInput")
	mapVirtualKeyW = user32.NewProc("MapVirtualKeyW")
)

const (
	inputKeyboard  = 1
	keyeventfKeyup = 0x0002
	mapvkVkToVsc   = 0
	vkControl      = 0x11
	vkV            = 0x56
)

type keyboardInput struct {
	wVk         uint16
	wScan       uint16
	dwFlags     uint32
	time        uint32
	dwExtraInfo uintptr
}

type input struct {
	inputType uint32
	ki        keyboardInput
	padding   [8]byte // pad to the C INPUT union size
}

// WindowsPaster implements Paster via SendInput.
type WindowsPaster struct{}

// NewPaster creates the Windows paste simulator.
func NewPaster() Paster {
	return &WindowsPaster{}
}

// Paste simulates Ctrl+V. Scan codes are included for compatibility
// with applications that ignore virtual-key-only input.
func (p *WindowsPaster) Paste() error {
	ctrlScan, _, _ := mapVirtualKeyW.Call(vkControl, mapvkVkToVsc)
	vScan, _, _ := mapVirtualKeyW.Call(vkV, mapvkVkToVsc)

	down := uint32(0)
	inputs := []input{
		{inputType: inputKeyboard, ki: keyboardInput{wVk: vkControl, wScan: uint16(ctrlScan), dwFlags: down}},
		{inputType: inputKeyboard, ki: keyboardInput{wVk: vkV, wScan: uint16(vScan), dwFlags: down}},
		{inputType: inputKeyboard, ki: keyboardInput{wVk: vkV, wScan: uint16(vScan), dwFlags: keyeventfKeyup}},
		{inputType: inputKeyboard, ki: keyboardInput{wVk: vkControl, wScan: uint16(ctrlScan), dwFlags: keyeventfKeyup}},
	}

	ret, _, err := sendInput.Call(
		uintptr(len(inputs)),
		uintptr(unsafe.Pointer(&inputs[0])),
		unsafe.Sizeof(inputs[0]),
	)
	if ret == 0 {
		return fmt.Errorf("SendInput failed: %w", err)
	}

	// Give the target application time to process the input.
	time.Sleep(20 * time.Millisecond)

	return nil
}
