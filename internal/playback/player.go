// Package playback implements per-guild voice playback on top of discordgo's
// voice transport: joining and moving channels, streaming an ffmpeg-decoded
// PCM source through an Opus encoder, and pause/resume/volume controls.
package playback

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"layeh.com/gopus"
)

var (
	ErrNotConnected  = errors.New("not connected to a voice channel")
	ErrNotPlaying    = errors.New("no audio source is currently active")
	ErrAlreadyPaused = errors.New("audio is already paused")
	ErrNotPaused     = errors.New("audio is not paused")
)

const frameDuration = 20 * time.Millisecond

// Player owns the voice session and the active source for one guild.
// It is safe for concurrent use.
type Player struct {
	dg        *discordgo.Session
	guildID   string
	newSource func(uri string) (Source, error)

	// playMu serializes Play and Disconnect so one source swap cannot race
	// another between stopping the old stream and installing the new one.
	playMu sync.Mutex

	mu       sync.Mutex
	vc       *discordgo.VoiceConnection
	source   Source
	paused   bool
	stop     chan struct{}
	done     chan struct{}
	stopOnce *sync.Once
}

func newPlayer(dg *discordgo.Session, guildID string) *Player {
	return &Player{
		dg:      dg,
		guildID: guildID,
		newSource: func(uri string) (Source, error) {
			raw, err := newFFmpegSource(uri)
			if err != nil {
				return nil, err
			}
			return NewVolumeSource(raw, 1.0), nil
		},
	}
}

// Connected reports whether an active voice session exists for the guild.
func (p *Player) Connected() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.vc != nil
}

// Playing reports whether an audio source is active (paused counts as active;
// an idle connection does not).
func (p *Player) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.source != nil
}

// Paused reports whether the active source is paused.
func (p *Player) Paused() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.source != nil && p.paused
}

// ChannelID returns the connected voice channel, or "" when disconnected.
func (p *Player) ChannelID() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.vc == nil {
		return ""
	}
	return p.vc.ChannelID
}

// Join connects to the given voice channel, moving the existing session
// instead of reconnecting when one is already open in this guild.
func (p *Player) Join(channelID string) error {
	p.mu.Lock()
	vc := p.vc
	p.mu.Unlock()

	if vc != nil {
		if err := vc.ChangeChannel(channelID, false, true); err != nil {
			return fmt.Errorf("failed to move voice channel: %w", err)
		}
		return nil
	}

	vc, err := p.dg.ChannelVoiceJoin(p.guildID, channelID, false, true)
	if err != nil {
		return fmt.Errorf("failed to join voice channel: %w", err)
	}

	p.mu.Lock()
	p.vc = vc
	p.mu.Unlock()

	log.Printf("[INFO] Joined voice channel %s on guild %s", channelID, p.guildID)
	return nil
}

// Disconnect stops any active source and closes the voice session.
func (p *Player) Disconnect() error {
	p.playMu.Lock()
	defer p.playMu.Unlock()

	if err := p.Stop(); err != nil && !errors.Is(err, ErrNotPlaying) {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.vc == nil {
		return ErrNotConnected
	}
	err := p.vc.Disconnect()
	p.vc = nil
	return err
}

// Play starts playing audio from uri, stopping any active source first.
// Enclosing <...> markers are stripped before the URI reaches ffmpeg.
func (p *Player) Play(uri string) error {
	uri = stripMaskers(uri)

	p.playMu.Lock()
	defer p.playMu.Unlock()

	if err := p.Stop(); err != nil && !errors.Is(err, ErrNotPlaying) {
		return err
	}

	p.mu.Lock()
	vc := p.vc
	p.mu.Unlock()
	if vc == nil {
		return ErrNotConnected
	}

	src, err := p.newSource(uri)
	if err != nil {
		return err
	}

	p.mu.Lock()
	p.source = src
	p.paused = false
	p.stop = make(chan struct{})
	p.done = make(chan struct{})
	p.stopOnce = &sync.Once{}
	stop, done := p.stop, p.done
	p.mu.Unlock()

	go p.stream(src, vc, stop, done)
	return nil
}

// Stop signals the streaming goroutine and waits for it to release the
// source. Stopping an idle player returns ErrNotPlaying.
func (p *Player) Stop() error {
	p.mu.Lock()
	if p.source == nil {
		p.mu.Unlock()
		return ErrNotPlaying
	}
	stop, done, once := p.stop, p.done, p.stopOnce
	p.mu.Unlock()

	once.Do(func() { close(stop) })
	<-done
	return nil
}

// Pause suspends frame delivery without touching the source.
func (p *Player) Pause() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.source == nil {
		return ErrNotPlaying
	}
	if p.paused {
		return ErrAlreadyPaused
	}
	p.paused = true
	return nil
}

// Resume continues frame delivery of a paused source.
func (p *Player) Resume() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.source == nil {
		return ErrNotPlaying
	}
	if !p.paused {
		return ErrNotPaused
	}
	p.paused = false
	return nil
}

// SetVolume clamps pct/100 to [0.0, 1.0] and applies it to the active source.
// Returns the applied factor, or ErrNoVolumeControl when the source does not
// expose volume adjustment.
func (p *Player) SetVolume(pct float64) (float64, error) {
	p.mu.Lock()
	src := p.source
	p.mu.Unlock()

	if src == nil {
		return 0, ErrNotPlaying
	}
	adj, ok := src.(VolumeAdjuster)
	if !ok {
		return 0, ErrNoVolumeControl
	}

	vol := ClampPercent(pct)
	adj.SetVolume(vol)
	return vol, nil
}

// stream reads 20ms PCM frames from src, encodes them with Opus, and pushes
// them to the voice connection until the source ends or stop is closed.
func (p *Player) stream(src Source, vc *discordgo.VoiceConnection, stop, done chan struct{}) {
	defer close(done)
	defer src.Close()
	defer func() {
		p.mu.Lock()
		if p.source == src {
			p.source = nil
			p.paused = false
		}
		p.mu.Unlock()
	}()

	encoder, err := gopus.NewEncoder(sampleRate, channels, gopus.Audio)
	if err != nil {
		log.Printf("[ERR] Encoder error: %v", err)
		return
	}

	_ = vc.Speaking(true)
	defer func() { _ = vc.Speaking(false) }()

	pcmBuf := make([]byte, frameSize*channels*2)
	intBuf := make([]int16, frameSize*channels)

	for {
		select {
		case <-stop:
			return
		default:
		}

		if p.Paused() {
			select {
			case <-stop:
				return
			case <-time.After(frameDuration):
			}
			continue
		}

		if _, err := io.ReadFull(src, pcmBuf); err != nil {
			if !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
				log.Printf("[WARN] PCM read error: %v", err)
			}
			return
		}

		for i := range intBuf {
			intBuf[i] = int16(binary.LittleEndian.Uint16(pcmBuf[i*2 : i*2+2]))
		}

		frame, err := encoder.Encode(intBuf, frameSize, len(pcmBuf))
		if err != nil {
			log.Printf("[ERR] Encode error: %v", err)
			return
		}

		select {
		case vc.OpusSend <- frame:
		case <-stop:
			return
		}
	}
}
