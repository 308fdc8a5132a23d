// Package audio provides the beeper for the sound timer,
// backed by an SDL audio device.
package audio

import (
	"encoding/binary"

	"github.com/veandco/go-sdl2/sdl"
)

const (
	sampleRate = 44100
	toneHz     = 440
	amplitude  = 3000

	// frameSamples is a 60 Hz frame's worth of samples.
	frameSamples = sampleRate / 60
)

var (
	device sdl.AudioDeviceID
	wave   []byte
)

// OpenAudio opens the SDL audio device and prepares the beep
// waveform.
func OpenAudio() error {
	if err := sdl.InitSubSystem(sdl.INIT_AUDIO); err != nil {
		return err
	}

	var err error
	device, err = sdl.OpenAudioDevice("", false, &sdl.AudioSpec{
		Freq:     sampleRate,
		Format:   sdl.AUDIO_S16LSB,
		Channels: 1,
		Samples:  2048,
	}, nil, 0)
	if err != nil {
		return err
	}

	wave = squareWave()
	sdl.PauseAudioDevice(device, false)

	return nil
}

// Beep queues a frame's worth of tone when the sound timer is
// active. Called once per frame by the emulator's audio
// listener.
func Beep(playing bool) {
	if !playing {
		return
	}
	// keep at most a couple of frames queued so the tone stops
	// promptly when the timer expires
	if sdl.GetQueuedAudioSize(device) > uint32(len(wave)*2) {
		return
	}
	_ = sdl.QueueAudio(device, wave)
}

// squareWave renders one frame of a square wave at the beep
// frequency as signed 16-bit little endian samples.
func squareWave() []byte {
	buf := make([]byte, frameSamples*2)
	period := sampleRate / toneHz
	for i := 0; i < frameSamples; i++ {
		sample := int16(amplitude)
		if i%period < period/2 {
			sample = -amplitude
		}
		binary.LittleEndian.PutUint16(buf[i*2:], uint16(sample))
	}
	return buf
}
