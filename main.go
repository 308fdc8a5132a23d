package main

import (
	"flag"
	"strings"

	rlog "github.com/retroenv/retrogolib/log"
	"github.com/thelolagemann/go-chip8/internal/chip8"
	"github.com/thelolagemann/go-chip8/internal/joypad"
	"github.com/thelolagemann/go-chip8/internal/types"
	"github.com/thelolagemann/go-chip8/pkg/audio"
	"github.com/thelolagemann/go-chip8/pkg/display"
	"github.com/thelolagemann/go-chip8/pkg/display/event"
	_ "github.com/thelolagemann/go-chip8/pkg/display/glfw"
	_ "github.com/thelolagemann/go-chip8/pkg/display/web"
	"github.com/thelolagemann/go-chip8/pkg/log"
	"github.com/thelolagemann/go-chip8/pkg/utils"
)

var (
	_ display.Emulator = &chip8.CHIP8{}
)

func main() {
	cfg := rlog.DefaultConfig()

	romFile := flag.String("rom", "", "The rom file to load")
	asVariant := flag.String("variant", "chip8", "The system variant to emulate. Can be chip8 or schip")
	displayDriver := flag.String("driver", "auto", "The display driver to use. Can be auto, glfw or web")
	cycles := flag.Int("cycles", chip8.DefaultCyclesPerSecond, "Instructions to execute per second")
	debug := flag.Bool("debug", false, "Enable the instruction trace")
	display.RegisterFlags()
	flag.Parse()

	if *debug {
		cfg.Level = rlog.DebugLevel
	}
	logger := rlog.NewWithConfig(cfg)

	if len(display.InstalledDrivers) == 0 {
		logger.Fatal("No display drivers installed. Please compile with at least one display driver")
	}

	if *romFile == "" {
		logger.Fatal("No rom file provided")
	}

	rom, err := utils.LoadFile(*romFile)
	if err != nil {
		logger.Fatal("Unable to load rom file", rlog.String("file", *romFile), rlog.Err(err))
	}

	variant := types.StringToVariant(strings.ToUpper(*asVariant))

	opts := []chip8.Opt{
		chip8.AsVariant(variant),
		chip8.CyclesPerSecond(*cycles),
		chip8.WithLogger(log.New()),
	}
	if *debug {
		opts = append(opts, chip8.Debug())
	}

	c, err := chip8.NewCHIP8(rom, opts...)
	if err != nil {
		logger.Fatal("Unable to create emulator", rlog.Err(err))
	}

	logger.Info("Loaded ROM",
		rlog.String("file", *romFile),
		rlog.Int("size", len(rom)),
		rlog.String("variant", variant.String()),
	)

	if err := audio.OpenAudio(); err != nil {
		logger.Warn("Unable to open audio device", rlog.Err(err))
	} else {
		c.AttachAudioListener(audio.Beep)
	}

	driver := display.GetDriver(*displayDriver)
	if driver == nil {
		logger.Fatal("Invalid display driver", rlog.String("driver", *displayDriver))
	}

	driver.Initialize(c)

	fb := make(chan []byte, 60)
	events := make(chan event.Event, 60)
	pressed := make(chan joypad.Key, 10)
	released := make(chan joypad.Key, 10)

	go c.Start(fb, events, pressed, released)

	if err := driver.Start(fb, events, pressed, released); err != nil {
		logger.Fatal("Display driver failed", rlog.Err(err))
	}
	_ = driver.Stop()
}
