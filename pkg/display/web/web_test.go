package web

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/thelolagemann/go-chip8/internal/joypad"
)

// waitForClient polls the driver until a client has registered.
func waitForClient(t *testing.T, d *webDriver) *client {
	t.Helper()

	deadline := time.After(time.Second)
	for {
		d.mu.Lock()
		for c := range d.clients {
			d.mu.Unlock()
			return c
		}
		d.mu.Unlock()

		select {
		case <-deadline:
			t.Fatal("no client registered")
		default:
			time.Sleep(10 * time.Millisecond)
		}
	}
}

func TestClientLifecycle(t *testing.T) {
	driver := &webDriver{clients: make(map[*client]bool)}
	pressed := make(chan joypad.Key, 10)
	released := make(chan joypad.Key, 10)

	server := httptest.NewServer(http.HandlerFunc(func(wr http.ResponseWriter, r *http.Request) {
		driver.serveWS(wr, r, pressed, released)
	}))
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatal(err)
	}

	c := waitForClient(t, driver)

	// key messages feed the keypad channels
	if err := conn.WriteMessage(websocket.BinaryMessage, []byte{msgKeyDown, 0x5}); err != nil {
		t.Fatal(err)
	}
	select {
	case key := <-pressed:
		if key != 0x5 {
			t.Errorf("expected key 0x5, got 0x%X", key)
		}
	case <-time.After(time.Second):
		t.Fatal("expected a key press")
	}

	if err := conn.WriteMessage(websocket.BinaryMessage, []byte{msgKeyUp, 0x5}); err != nil {
		t.Fatal(err)
	}
	select {
	case key := <-released:
		if key != 0x5 {
			t.Errorf("expected key 0x5, got 0x%X", key)
		}
	case <-time.After(time.Second):
		t.Fatal("expected a key release")
	}

	// disconnecting unregisters the client and closes its send
	// channel, so the write pump exits instead of blocking on
	// the channel forever
	_ = conn.Close()

	deadline := time.After(time.Second)
	for {
		driver.mu.Lock()
		n := len(driver.clients)
		driver.mu.Unlock()
		if n == 0 {
			break
		}
		select {
		case <-deadline:
			t.Fatal("client still registered after disconnect")
		default:
			time.Sleep(10 * time.Millisecond)
		}
	}

	select {
	case _, ok := <-c.send:
		if ok {
			t.Fatal("expected send channel closed after disconnect")
		}
	case <-time.After(time.Second):
		t.Fatal("send channel not closed after disconnect")
	}
}
