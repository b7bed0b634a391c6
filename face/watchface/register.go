package watchface

import (
	"watchface/face/kernel"
	"watchface/face/proto"
	"watchface/hal"
)

// Register subscribes the face's entry points on loop. Call it before Start
// so the tap window timer can be armed.
func (f *Face) Register(loop *kernel.Loop) {
	f.loop = loop

	loop.Subscribe(kernel.EventTick, func(ev kernel.Event) { f.OnTick(ev.Time()) })
	loop.Subscribe(kernel.EventBounds, func(kernel.Event) { f.OnBoundsChanged() })
	loop.Subscribe(kernel.EventBattery, func(ev kernel.Event) {
		f.OnBatteryChanged(hal.BatteryState{Percent: ev.Value, Charging: ev.Flag})
	})
	loop.Subscribe(kernel.EventBluetooth, func(ev kernel.Event) { f.OnBluetoothChanged(ev.Flag) })
	loop.Subscribe(kernel.EventFocus, func(ev kernel.Event) { f.OnFocusChanged(ev.Flag) })
	loop.Subscribe(kernel.EventInbox, func(ev kernel.Event) { f.OnMessage(ev.Payload()) })
	loop.Subscribe(kernel.EventInboxDropped, func(ev kernel.Event) { f.OnMessageDropped(proto.ErrCode(ev.Value)) })
	loop.Subscribe(kernel.EventOutboxFailed, func(ev kernel.Event) { f.OnOutboxFailed(proto.ErrCode(ev.Value)) })
	loop.Subscribe(kernel.EventOutboxSent, func(kernel.Event) { f.OnOutboxSent() })
	loop.Subscribe(kernel.EventTap, func(kernel.Event) { f.OnTap() })
	loop.Subscribe(kernel.EventTimer, func(ev kernel.Event) { f.OnTimer(ev.Timer) })
}
