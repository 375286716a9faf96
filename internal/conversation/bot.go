package conversation

import (
	"math/rand/v2"
	"time"

	"github.com/zhubert/parley/internal/message"
)

// BotOptions tunes how the simulated peer behaves.
type BotOptions struct {
	Seed uint64

	// MinDelivery and MaxDelivery bound how long a sent message stays pending.
	MinDelivery time.Duration
	MaxDelivery time.Duration
	// FailureRate is the chance a delivery fails, from 0 to 1.
	FailureRate float64
	// ReadDelay is how long after a delivery the peer reads it.
	ReadDelay time.Duration
	// ReplyRate is the chance the peer answers a delivered message.
	ReplyRate  float64
	ReplyDelay time.Duration
}

// DefaultBotOptions returns the options used by the interactive demo.
func DefaultBotOptions() BotOptions {
	return BotOptions{
		Seed:        uint64(time.Now().UnixNano()),
		MinDelivery: 600 * time.Millisecond,
		MaxDelivery: 1800 * time.Millisecond,
		FailureRate: 0.15,
		ReadDelay:   2 * time.Second,
		ReplyRate:   0.6,
		ReplyDelay:  3 * time.Second,
	}
}

var (
	replies = []string{
		"Sounds good to me",
		"Let me check and get back to you",
		"Haha, fair enough",
		"Can you send the link again?",
		"I was thinking the same thing. The pending section made it obvious which messages were still in flight.",
		"On my way",
		"Sure, here's the config I used:\n```json\n{\n  \"theme\": \"nord\",\n  \"strict\": true\n}\n```",
		"Did you see the read receipts update live?",
	}
	emoji = []string{"👍", "😂", "🎉", "❤️", "🔥", "👀🙌"}
)

// Bot plays the other participant. It is deterministic for a given seed.
type Bot struct {
	opts BotOptions
	rng  *rand.Rand
}

// NewBot creates a bot.
func NewBot(opts BotOptions) *Bot {
	if opts.MaxDelivery < opts.MinDelivery {
		opts.MaxDelivery = opts.MinDelivery
	}
	return &Bot{
		opts: opts,
		rng:  rand.New(rand.NewPCG(opts.Seed, opts.Seed>>1|1)),
	}
}

// Options returns the bot's options.
func (b *Bot) Options() BotOptions { return b.opts }

// Incoming makes a message from the peer: mostly text, sometimes emoji,
// occasionally a picture.
func (b *Bot) Incoming(at time.Time) message.Message {
	switch n := b.rng.IntN(10); {
	case n < 6:
		return message.NewText(replies[b.rng.IntN(len(replies))], message.Theirs, at)
	case n < 9:
		return message.NewText(emoji[b.rng.IntN(len(emoji))], message.Theirs, at)
	default:
		return message.NewImage(Swatch(b.rng.Uint64()), message.Theirs, at)
	}
}

// DeliveryDelay picks how long the next send stays pending.
func (b *Bot) DeliveryDelay() time.Duration {
	spread := b.opts.MaxDelivery - b.opts.MinDelivery
	if spread <= 0 {
		return b.opts.MinDelivery
	}
	return b.opts.MinDelivery + time.Duration(b.rng.Int64N(int64(spread)+1))
}

// DeliveryFails decides whether the next delivery fails.
func (b *Bot) DeliveryFails() bool {
	return b.rng.Float64() < b.opts.FailureRate
}

// ReadDelay returns how long the peer takes to read a delivered message.
func (b *Bot) ReadDelay() time.Duration { return b.opts.ReadDelay }

// Replies decides whether the peer answers a delivered message, and after
// how long.
func (b *Bot) Replies() (time.Duration, bool) {
	if b.rng.Float64() >= b.opts.ReplyRate {
		return 0, false
	}
	return b.opts.ReplyDelay, true
}
