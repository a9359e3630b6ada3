package lifecycle

import "context"

// SpeechCapture turns recorded speech into a transcript. Injected so the
// controller and its tests never depend on a live microphone context.
type SpeechCapture interface {
	Transcribe(ctx context.Context) (string, error)
}

// Clipboard receives note text copied by the user.
type Clipboard interface {
	WriteText(text string) error
}

// ShareSink hands a note off to an external share target.
type ShareSink interface {
	Share(ctx context.Context, title, text string) error
}

// Capabilities bundles the optional platform integrations. Any field may be
// nil; the corresponding operations then fail with ErrCapabilityUnavailable.
type Capabilities struct {
	Speech    SpeechCapture
	Clipboard Clipboard
	Share     ShareSink
}

// Dictate captures speech and opens a new voice-recorded draft seeded with
// the transcript. Any draft already open is discarded.
func (c *Controller) Dictate(ctx context.Context) error {
	if c.caps.Speech == nil {
		return ErrCapabilityUnavailable
	}

	transcript, err := c.caps.Speech.Transcribe(ctx)
	if err != nil {
		c.log.Error("speech capture", "error", err)
		return translate(err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft = &Draft{
		Body:            transcript,
		IsVoiceRecorded: true,
	}
	return nil
}

// CopyNote puts a note's body on the clipboard.
func (c *Controller) CopyNote(id string) error {
	if c.caps.Clipboard == nil {
		return ErrCapabilityUnavailable
	}

	c.mu.Lock()
	i := c.indexOf(id)
	if i < 0 {
		c.mu.Unlock()
		return ErrNotFound
	}
	body := c.collection[i].Body
	c.mu.Unlock()

	return c.caps.Clipboard.WriteText(body)
}

// ShareNote hands a note's title and body to the share sink.
func (c *Controller) ShareNote(ctx context.Context, id string) error {
	if c.caps.Share == nil {
		return ErrCapabilityUnavailable
	}

	c.mu.Lock()
	i := c.indexOf(id)
	if i < 0 {
		c.mu.Unlock()
		return ErrNotFound
	}
	n := c.collection[i]
	c.mu.Unlock()

	return c.caps.Share.Share(ctx, n.Title, n.Body)
}
