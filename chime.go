//go:build !headless

// chime.go - completion chime
//
// Grounded on the teacher's OtoPlayer in audio_backend_oto.go: open an
// oto.Context once, write a short generated waveform through an
// oto.Player. Failure to open an audio device is logged and otherwise
// ignored — it must never change the process exit code.

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

package main

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"github.com/ebitengine/oto/v3"
)

const chimeSampleRate = 44100

// PlayChime renders and plays a short sine sweep: rising on a clean exit,
// falling on a fatal error, matching spec.md's "audible exit signal" pair.
func PlayChime(rising bool) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   chimeSampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
	})
	if err != nil {
		fmt.Printf("chime: audio device unavailable: %v\n", err)
		return
	}
	<-ready

	samples := chimeWaveform(rising)
	buf := make([]byte, 4*len(samples))
	for i, s := range samples {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(s))
	}

	player := ctx.NewPlayer(bytes.NewReader(buf))
	player.Play()
	for player.IsPlaying() {
		time.Sleep(10 * time.Millisecond)
	}
	player.Close()
}

func chimeWaveform(rising bool) []float32 {
	const durationSeconds = 0.25
	n := int(durationSeconds * chimeSampleRate)
	samples := make([]float32, n)

	startHz, endHz := 440.0, 880.0
	if !rising {
		startHz, endHz = 880.0, 220.0
	}

	for i := 0; i < n; i++ {
		t := float64(i) / chimeSampleRate
		frac := float64(i) / float64(n)
		freq := startHz + (endHz-startHz)*frac
		envelope := 1.0 - frac
		samples[i] = float32(math.Sin(2*math.Pi*freq*t) * envelope * 0.2)
	}
	return samples
}
