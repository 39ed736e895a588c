package midi

// NoteEvent is one incoming note strike from a controller.
type NoteEvent struct {
	Note     uint8
	Velocity uint8
	Channel  uint8
}

// Controller is a connected MIDI input device.
type Controller interface {
	ID() string

	// NoteEvents is the stream of incoming strikes. The channel closes
	// when the controller is closed.
	NoteEvents() <-chan NoteEvent

	Close() error
}

// BaseNote is the MIDI note of pad 0. Notes 36..51 (the GM drum octave
// upward) map onto pads 0..15, matching how drum pads are laid out on
// most controllers.
const BaseNote = 36

// PadForNote returns the pad index a note maps to, or -1 if the note is
// outside the pad range.
func PadForNote(note uint8) int {
	n := int(note) - BaseNote
	if n < 0 || n >= 16 {
		return -1
	}
	return n
}
