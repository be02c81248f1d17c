package testsupport

import (
	"context"
	"errors"
	"sync"

	"subtrans/internal/services/ytdlp"
)

// FakeTranslator answers from a fixed table. Lines missing from Responses
// fail, as do lines listed in Failures.
type FakeTranslator struct {
	Responses map[string]string
	Failures  map[string]error
	// Passthrough returns unknown lines unchanged instead of failing.
	Passthrough bool
	// OnCall runs before each lookup; tests use it to cancel contexts mid-file.
	OnCall func(text string)

	mu    sync.Mutex
	calls []FakeCall
}

// FakeCall records one Translate invocation.
type FakeCall struct {
	Text   string
	Source string
	Target string
}

// Translate implements the line translator contract.
func (f *FakeTranslator) Translate(ctx context.Context, text, source, target string) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, FakeCall{Text: text, Source: source, Target: target})
	f.mu.Unlock()

	if f.OnCall != nil {
		f.OnCall(text)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err, ok := f.Failures[text]; ok {
		return "", err
	}
	if translated, ok := f.Responses[text]; ok {
		return translated, nil
	}
	if f.Passthrough {
		return text, nil
	}
	return "", errors.New("fake translator: no response for " + text)
}

// Calls returns a copy of the recorded invocations.
func (f *FakeTranslator) Calls() []FakeCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]FakeCall(nil), f.calls...)
}

// FakeDownloader returns a canned result, optionally writing files first.
type FakeDownloader struct {
	Result *ytdlp.Result
	Err    error
	// Write is called with the request before returning, to create files.
	Write func(req ytdlp.Request) error

	Requests []ytdlp.Request
}

// Download implements the subtitle downloader contract.
func (f *FakeDownloader) Download(ctx context.Context, req ytdlp.Request) (*ytdlp.Result, error) {
	f.Requests = append(f.Requests, req)
	if f.Write != nil {
		if err := f.Write(req); err != nil {
			return nil, err
		}
	}
	if f.Err != nil {
		return nil, f.Err
	}
	if f.Result == nil {
		return &ytdlp.Result{}, nil
	}
	return f.Result, nil
}
