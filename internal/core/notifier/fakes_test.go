package notifier

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"flathunter-service/internal/core/port"
)

type sentPhoto struct {
	receiver int64
	photo    string
	caption  string
	button   *port.ActionButton
}

type sentGroup struct {
	receiver int64
	photos   []string
	replyTo  int
}

type fakeMessenger struct {
	mu        sync.Mutex
	texts     map[int64][]string
	photos    []sentPhoto
	groups    []sentGroup
	answers   map[string][]string
	failFor   map[int64]bool
	failGroup bool
	nextID    int
}

func newFakeMessenger() *fakeMessenger {
	return &fakeMessenger{texts: map[int64][]string{}, answers: map[string][]string{}, failFor: map[int64]bool{}}
}

func (m *fakeMessenger) SendText(_ context.Context, receiver int64, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failFor[receiver] {
		return fmt.Errorf("chat %d not found", receiver)
	}
	m.texts[receiver] = append(m.texts[receiver], text)
	return nil
}

func (m *fakeMessenger) SendPhoto(_ context.Context, receiver int64, photo, caption string, button *port.ActionButton) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failFor[receiver] {
		return 0, fmt.Errorf("chat %d not found", receiver)
	}
	m.nextID++
	m.photos = append(m.photos, sentPhoto{receiver: receiver, photo: photo, caption: caption, button: button})
	return m.nextID, nil
}

func (m *fakeMessenger) SendPhotoGroup(_ context.Context, receiver int64, photos []string, replyTo int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failGroup {
		return errors.New("too many requests")
	}
	m.groups = append(m.groups, sentGroup{receiver: receiver, photos: append([]string(nil), photos...), replyTo: replyTo})
	return nil
}

func (m *fakeMessenger) AnswerCallback(_ context.Context, callbackID, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.answers[callbackID] = append(m.answers[callbackID], text)
	return nil
}
