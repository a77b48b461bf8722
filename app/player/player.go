// Package player plays local album directories into a guild voice channel.
// Tracks are transcoded to opus with dca and streamed sequentially from a
// FIFO queue; one playback loop runs per process since the bot only ever
// joins one voice channel at a time.
package player

import (
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/bwmarrin/discordgo"
	"github.com/jonas747/dca"
)

type Player struct {
	library *Library
	queue   *Queue

	mu      sync.Mutex
	voice   *discordgo.VoiceConnection
	playing bool
	skip    chan struct{}
	stop    chan struct{}
}

func NewPlayer(library *Library) *Player {
	return &Player{
		library: library,
		queue:   NewQueue(),
	}
}

// Enqueue adds tracks and starts the playback loop on the given voice
// connection if one is not already running. An already-connected player
// just keeps draining the queue.
func (p *Player) Enqueue(voice *discordgo.VoiceConnection, tracks []string) {
	p.queue.Push(tracks...)

	p.mu.Lock()
	defer p.mu.Unlock()

	p.voice = voice
	if p.playing {
		return
	}
	p.playing = true
	p.skip = make(chan struct{}, 1)
	p.stop = make(chan struct{})
	go p.loop(voice, p.skip, p.stop)
}

// Skip ends the current track; the loop moves on to the next one.
func (p *Player) Skip() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.playing {
		return false
	}
	select {
	case p.skip <- struct{}{}:
	default:
	}
	return true
}

// Stop clears the queue, ends playback and disconnects from voice.
func (p *Player) Stop() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.playing {
		return false
	}
	p.queue.Clear()
	close(p.stop)
	p.playing = false
	return true
}

func (p *Player) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing
}

func (p *Player) Queue() *Queue { return p.queue }

func (p *Player) loop(voice *discordgo.VoiceConnection, skip, stop chan struct{}) {
	defer func() {
		p.mu.Lock()
		// A Stop followed by a fresh Enqueue may have started a new loop
		// already; only clear state still owned by this one.
		if p.stop == stop {
			p.playing = false
			p.voice = nil
		}
		p.mu.Unlock()

		if err := voice.Disconnect(); err != nil {
			slog.Warn("Voice disconnect failed", "error", err)
		}
	}()

	if err := voice.Speaking(true); err != nil {
		slog.Warn("Failed to set speaking state", "error", err)
	}
	defer voice.Speaking(false)

	for {
		select {
		case <-stop:
			return
		default:
		}

		track, ok := p.queue.Pop()
		if !ok {
			return
		}

		if !p.playTrack(voice, track, skip, stop) {
			return
		}
	}
}

// playTrack streams a single file, returning false when playback should
// stop entirely.
func (p *Player) playTrack(voice *discordgo.VoiceConnection, track string, skip, stop chan struct{}) bool {
	options := dca.StdEncodeOptions
	options.RawOutput = true

	encode, err := dca.EncodeFile(track, options)
	if err != nil {
		slog.Error("Failed to encode track, skipping", "track", track, "error", err)
		return true
	}
	defer encode.Cleanup()

	done := make(chan error)
	dca.NewStream(encode, voice, done)

	select {
	case err := <-done:
		if err != nil && !errors.Is(err, io.EOF) {
			slog.Error("Track playback failed", "track", track, "error", err)
		}
		return true
	case <-skip:
		slog.Debug("Track skipped", "track", track)
		return true
	case <-stop:
		return false
	}
}
