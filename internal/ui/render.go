package ui

import (
	"bytes"
	"image"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/x/ansi"
	"github.com/nfnt/resize"

	"github.com/zhubert/parley/internal/chatlist"
	"github.com/zhubert/parley/internal/message"
)

// DefaultTimeLayout is the layout of the time label under a bubble
const DefaultTimeLayout = "15:04"

// RenderOptions controls how a row is drawn.
type RenderOptions struct {
	Width      int
	TimeLayout string
	Flash      bool // row was just inserted or reloaded
}

// RenderRow draws a resolved row as a block of terminal lines exactly Width
// columns wide.
func RenderRow(row chatlist.Row, opts RenderOptions) string {
	if opts.Width <= 0 {
		opts.Width = DefaultWrapWidth
	}
	if opts.TimeLayout == "" {
		opts.TimeLayout = DefaultTimeLayout
	}
	if row.Placeholder {
		return AnnotationStyle.Render("…")
	}

	msg := row.Message
	switch msg.ViewKind() {
	case message.ViewReadMarker:
		return renderReadMarker(msg, opts)
	case message.ViewAnnotation:
		return renderAnnotation(msg, opts)
	case message.ViewEmojiMine, message.ViewEmojiTheirs:
		return renderEmoji(msg, row.Translucent, opts)
	case message.ViewImageMine, message.ViewImageTheirs:
		return renderImageBubble(msg, row.Translucent, opts)
	default:
		return renderTextBubble(msg, row.Translucent, opts)
	}
}

func sidePosition(side message.Side) lipgloss.Position {
	if side == message.Mine {
		return lipgloss.Right
	}
	return lipgloss.Left
}

// align places each line of block against the message's side.
func align(block string, width int, side message.Side) string {
	return lipgloss.PlaceHorizontal(width, sidePosition(side), block)
}

func bubbleStyle(side message.Side, translucent, flash bool) lipgloss.Style {
	var style lipgloss.Style
	switch {
	case translucent:
		style = BubblePendingStyle
	case side == message.Mine:
		style = BubbleMineStyle
	default:
		style = BubbleTheirsStyle
	}
	if flash {
		style = style.BorderForeground(BubbleFlashBorder)
	}
	return style
}

// metaLine renders the timestamp and error indicator shown under a bubble,
// or "" when neither applies.
func metaLine(msg message.Message, opts RenderOptions) string {
	var parts []string
	if msg.ShowsError() {
		parts = append(parts, ErrorIndicator.Render("! not delivered"))
	}
	if msg.ShowTimestamp {
		parts = append(parts, TimestampStyle.Render(msg.Time.Format(opts.TimeLayout)))
	}
	return strings.Join(parts, " ")
}

func withMeta(block string, msg message.Message, opts RenderOptions) string {
	block = align(block, opts.Width, msg.Side)
	if meta := metaLine(msg, opts); meta != "" {
		block += "\n" + align(ansi.Truncate(meta, opts.Width, "…"), opts.Width, msg.Side)
	}
	return block
}

func renderTextBubble(msg message.Message, translucent bool, opts RenderOptions) string {
	body := renderBody(msg.Text, chatlist.TextColumns(opts.Width))
	bubble := bubbleStyle(msg.Side, translucent, opts.Flash).Render(body)
	return withMeta(bubble, msg, opts)
}

func renderEmoji(msg message.Message, translucent bool, opts RenderOptions) string {
	style := EmojiStyle
	if translucent {
		style = EmojiPendingStyle
	}
	body := style.Render(ansi.Wrap(msg.Text, chatlist.BubbleWidth(opts.Width), ""))
	return withMeta(body, msg, opts)
}

func renderImageBubble(msg message.Message, translucent bool, opts RenderOptions) string {
	var body string
	if msg.Image != nil {
		body = renderImage(msg.Image, chatlist.TextColumns(opts.Width), chatlist.MaxImageRows)
	}
	if body == "" {
		body = "[image]"
	}
	bubble := bubbleStyle(msg.Side, translucent, opts.Flash).Padding(0).Render(body)
	return withMeta(bubble, msg, opts)
}

func renderAnnotation(msg message.Message, opts RenderOptions) string {
	style := AnnotationStyle
	if opts.Flash {
		style = style.Foreground(ColorSecondary)
	}
	text := msg.Text
	if msg.ShowTimestamp {
		text += " · " + msg.Time.Format(opts.TimeLayout)
	}
	text = ansi.Truncate(text, opts.Width, "…")
	return lipgloss.PlaceHorizontal(opts.Width, lipgloss.Center, style.Render(text))
}

func renderReadMarker(msg message.Message, opts RenderOptions) string {
	style := ReadMarkerStyle
	if opts.Flash {
		style = style.Foreground(ColorSecondary)
	}
	text := ansi.Truncate(msg.Text, opts.Width-1, "…")
	return lipgloss.PlaceHorizontal(opts.Width, lipgloss.Right, style.Render(text)+" ")
}

// renderBody wraps plain text to cols and syntax-highlights fenced code
// blocks.
func renderBody(text string, cols int) string {
	if !strings.Contains(text, "```") {
		return ansi.Wrap(text, cols, "")
	}

	var result []string
	var code strings.Builder
	inCode := false
	lang := ""

	flushCode := func() {
		highlighted := strings.TrimRight(highlightCode(code.String(), lang), "\n")
		result = append(result, CodeBlockStyle.Render(ansi.Hardwrap(highlighted, cols, true)))
		code.Reset()
	}

	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(line, "```") {
			if inCode {
				flushCode()
				inCode = false
				lang = ""
			} else {
				inCode = true
				lang = strings.TrimSpace(strings.TrimPrefix(line, "```"))
			}
			continue
		}
		if inCode {
			if code.Len() > 0 {
				code.WriteString("\n")
			}
			code.WriteString(line)
			continue
		}
		result = append(result, ansi.Wrap(line, cols, ""))
	}
	if inCode {
		flushCode()
	}
	return strings.Join(result, "\n")
}

// highlightCode applies syntax highlighting to code using chroma
func highlightCode(code, language string) string {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get("monokai")
	if style == nil {
		style = styles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return code
	}

	return buf.String()
}

// renderImage draws img as half-block cells: each cell shows two vertically
// stacked pixels, the top one as foreground and the bottom one as background.
func renderImage(img image.Image, maxCols, maxRows int) string {
	b := img.Bounds()
	cols, rows := chatlist.ImageCells(b.Dx(), b.Dy(), maxCols, maxRows)
	if cols == 0 || rows == 0 {
		return ""
	}

	scaled := resize.Resize(uint(cols), uint(rows*2), img, resize.Bilinear)
	sb := scaled.Bounds()

	var out strings.Builder
	for y := 0; y < rows; y++ {
		if y > 0 {
			out.WriteString("\n")
		}
		for x := 0; x < cols; x++ {
			top := scaled.At(sb.Min.X+x, sb.Min.Y+2*y)
			bottom := scaled.At(sb.Min.X+x, sb.Min.Y+2*y+1)
			out.WriteString(lipgloss.NewStyle().Foreground(top).Background(bottom).Render("▀"))
		}
	}
	return out.String()
}
