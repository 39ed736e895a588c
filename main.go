package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"samplepad/audio"
	"samplepad/config"
	"samplepad/debug"
	"samplepad/midi"
	"samplepad/sample"
	"samplepad/sequencer"
	"samplepad/tui"
)

func main() {
	if os.Getenv("SAMPLEPAD_DEBUG") != "" {
		if err := debug.Enable(); err == nil {
			defer debug.Disable()
		}
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	if len(os.Args) > 1 && os.Args[1] == "bind" {
		if err := bindPadCmd(cfg, os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "bind: %v\n", err)
			os.Exit(1)
		}
		return
	}

	machine, engine := sequencer.New(cfg.SampleRate())
	if cfg.UI.LastTempo > 0 {
		machine.SetTempo(cfg.UI.LastTempo)
	}
	machine.SetSwing(cfg.UI.LastSwing)

	// Sample-loading collaborator: decode configured pad samples into
	// the bank, then push the bindings into the machine.
	bank := sample.NewBank()
	for _, pb := range cfg.Pads {
		buf, err := sample.LoadWAV(pb.Path)
		if err != nil {
			debug.Log("sample", "load %s: %v", pb.Path, err)
			continue
		}
		if buf.Rate() != cfg.SampleRate() {
			debug.Log("sample", "%s: rate %d != engine %d, playing unresampled",
				buf.Name(), buf.Rate(), cfg.SampleRate())
		}
		bank.Bind(pb.Pad, buf)
	}
	for pad := 0; pad < sequencer.NumPads; pad++ {
		if buf := bank.Lookup(pad); buf != nil {
			machine.BindPad(pad, buf)
		}
	}

	out, err := audio.NewOutput(cfg.SampleRate(), engine)
	if err != nil {
		fmt.Fprintf(os.Stderr, "audio: %v\n", err)
		os.Exit(1)
	}
	out.Start()
	defer out.Close()

	// MIDI collaborator: incoming notes preview-trigger pads.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if cfg.MIDI.AutoConnect {
		dm := midi.NewDeviceManager()
		go dm.Run(ctx)
		go func() {
			for evt := range dm.Events() {
				if evt.Type != midi.DeviceConnected {
					continue
				}
				debug.Log("midi", "connected %s", evt.ID)
				go func(ctrl midi.Controller) {
					for n := range ctrl.NoteEvents() {
						if pad := midi.PadForNote(n.Note); pad >= 0 {
							machine.TriggerPad(pad)
						}
					}
				}(evt.Controller)
			}
		}()
	}

	p := tea.NewProgram(tui.NewModel(machine), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "tui: %v\n", err)
		os.Exit(1)
	}

	// Persist UI prefs on the way out.
	cfg.UI.LastTempo = machine.Tempo()
	cfg.UI.LastSwing = machine.Swing()
	if err := cfg.Save(); err != nil {
		debug.Log("config", "save: %v", err)
	}
}

// bindPadCmd handles `samplepad bind <pad> <file>`: decodes the sample
// to validate it, then persists the binding for the next run.
func bindPadCmd(cfg *config.Config, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: samplepad bind <pad 1-%d> <file.wav>", sequencer.NumPads)
	}
	pad, err := strconv.Atoi(args[0])
	if err != nil || pad < 1 || pad > sequencer.NumPads {
		return fmt.Errorf("pad must be 1-%d", sequencer.NumPads)
	}
	buf, err := sample.LoadWAV(args[1])
	if err != nil {
		return err
	}
	cfg.BindPad(pad-1, args[1])
	if err := cfg.Save(); err != nil {
		return err
	}
	fmt.Printf("pad %d <- %s (%s)\n", pad, buf.Name(), buf.Duration().Round(time.Millisecond))
	return nil
}
