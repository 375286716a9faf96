package conversation

import (
	"fmt"
	"image"
	"image/color"
	"math/rand/v2"
	"time"

	"github.com/nfnt/resize"

	"github.com/zhubert/parley/internal/message"
)

// Swatch dimensions in pixels.
const (
	SwatchWidth  = 48
	SwatchHeight = 32
)

// Swatch generates a soft color gradient picture. The same seed always
// yields the same picture.
func Swatch(seed uint64) image.Image {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	tile := image.NewRGBA(image.Rect(0, 0, 3, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			tile.Set(x, y, color.RGBA{
				R: uint8(rng.IntN(256)),
				G: uint8(rng.IntN(256)),
				B: uint8(rng.IntN(256)),
				A: 0xff,
			})
		}
	}
	return resize.Resize(SwatchWidth, SwatchHeight, tile, resize.Bilinear)
}

type seedLine struct {
	ago  time.Duration
	side message.Side
	kind message.Kind
	text string
	read bool
}

var transcript = []seedLine{
	{ago: 3 * time.Hour, side: message.Theirs, kind: message.KindAnnotation, text: "%s joined the conversation"},
	{ago: 170 * time.Minute, side: message.Theirs, kind: message.KindText, text: "Hey! Did you get a chance to try the new build?"},
	{ago: 165 * time.Minute, side: message.Mine, kind: message.KindText, text: "Yes, this morning. Scrolling through long threads feels much smoother now.", read: true},
	{ago: 160 * time.Minute, side: message.Theirs, kind: message.KindText, text: "🎉"},
	{ago: 95 * time.Minute, side: message.Mine, kind: message.KindText, text: "Here is the loop I used to stress it:\n```go\nfor i := 0; i < 500; i++ {\n\tsession.InsertCommitted(1, 0, true, chatlist.AnimationBottom)\n}\n```", read: true},
	{ago: 90 * time.Minute, side: message.Theirs, kind: message.KindImage},
	{ago: 88 * time.Minute, side: message.Theirs, kind: message.KindText, text: "Screenshot from my terminal, colors came out a bit wild"},
	{ago: 20 * time.Minute, side: message.Mine, kind: message.KindText, text: "Looks great 😄", read: true},
	{ago: 5 * time.Minute, side: message.Mine, kind: message.KindText, text: "Ship it on Friday?"},
}

// Seed replaces the conversation with a short transcript with peer. The
// older messages of ours are already read. Callers follow with FullReload.
func (c *Conversation) Seed(peer string) {
	c.Reset()
	now := c.now()
	for i, line := range transcript {
		at := now.Add(-line.ago)
		var msg message.Message
		switch line.kind {
		case message.KindAnnotation:
			msg = message.NewAnnotation(fmt.Sprintf(line.text, peer), line.side, at)
		case message.KindImage:
			msg = message.NewImage(Swatch(uint64(i)+1), line.side, at)
		default:
			msg = message.NewText(line.text, line.side, at)
		}
		c.Receive(msg)
		if line.read {
			c.committed[0].ReadAt = at.Add(2 * time.Minute)
		}
	}
}
