package kernel

const mailboxSlots = 16

type mailbox struct {
	head  uint8
	tail  uint8
	slots [mailboxSlots]Event
}

func (mb *mailbox) push(ev Event) bool {
	if mb.head-mb.tail >= mailboxSlots {
		return false
	}
	mb.slots[mb.head%mailboxSlots] = ev
	mb.head++
	return true
}

func (mb *mailbox) pop() (Event, bool) {
	if mb.tail == mb.head {
		return Event{}, false
	}
	ev := mb.slots[mb.tail%mailboxSlots]
	mb.tail++
	return ev, true
}

func (mb *mailbox) len() int {
	return int(mb.head - mb.tail)
}
