// Package web implements a display driver that streams frames
// to a browser over a websocket and feeds key events back.
package web

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/thelolagemann/go-chip8/internal/joypad"
	"github.com/thelolagemann/go-chip8/internal/ppu"
	"github.com/thelolagemann/go-chip8/pkg/display"
	"github.com/thelolagemann/go-chip8/pkg/display/event"
)

// message prefixes on the wire, client to server
const (
	msgKeyDown = 0x01
	msgKeyUp   = 0x02
)

// message prefixes on the wire, server to client
const (
	msgFrame = 0x01
	msgTitle = 0x02
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func init() {
	driver := &webDriver{}
	display.Install("web", driver, []display.DriverOption{
		{
			Name:        "addr",
			Default:     "localhost:8090",
			Value:       &driver.addr,
			Type:        "string",
			Description: "Address to serve the web display on",
		},
	})
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

type webDriver struct {
	addr string

	emu display.Emulator

	mu      sync.Mutex
	clients map[*client]bool
	title   []byte
}

func (w *webDriver) Initialize(e display.Emulator) {
	w.emu = e
	w.clients = make(map[*client]bool)
}

// Start starts the display driver.
func (w *webDriver) Start(frames <-chan []byte, evts <-chan event.Event, pressed, released chan<- joypad.Key) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(wr http.ResponseWriter, r *http.Request) {
		wr.Header().Set("Content-Type", "text/html")
		_, _ = wr.Write([]byte(page))
	})
	mux.HandleFunc("/ws", func(wr http.ResponseWriter, r *http.Request) {
		w.serveWS(wr, r, pressed, released)
	})

	server := &http.Server{Addr: w.addr, Handler: mux}
	errs := make(chan error, 1)
	go func() {
		errs <- server.ListenAndServe()
	}()

	for {
		select {
		case f := <-frames:
			w.broadcast(append([]byte{msgFrame}, pack(f)...))
		case e := <-evts:
			switch e.Type {
			case event.Title:
				msg := append([]byte{msgTitle}, e.Data.(string)...)
				w.mu.Lock()
				w.title = msg
				w.mu.Unlock()
				w.broadcast(msg)
			case event.Quit:
				return server.Close()
			}
		case err := <-errs:
			return err
		}
	}
}

// Stop stops the display driver.
func (w *webDriver) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	for c := range w.clients {
		_ = c.conn.Close()
	}

	return nil
}

func (w *webDriver) broadcast(msg []byte) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for c := range w.clients {
		select {
		case c.send <- msg:
		default: // slow client, drop the frame
		}
	}
}

// serveWS upgrades a connection, registers the client and runs
// its read and write pumps.
func (w *webDriver) serveWS(wr http.ResponseWriter, r *http.Request, pressed, released chan<- joypad.Key) {
	conn, err := upgrader.Upgrade(wr, r, nil)
	if err != nil {
		return
	}

	c := &client{conn: conn, send: make(chan []byte, 60)}
	w.mu.Lock()
	w.clients[c] = true
	if w.title != nil {
		c.send <- w.title
	}
	w.mu.Unlock()

	go w.readPump(c, pressed, released)
	go w.writePump(c)
}

func (w *webDriver) readPump(c *client, pressed, released chan<- joypad.Key) {
	defer func() {
		// closing the send channel stops the write pump; the
		// delete and close happen under the lock so broadcast
		// never sends on a closed channel
		w.mu.Lock()
		delete(w.clients, c)
		close(c.send)
		w.mu.Unlock()
		_ = c.conn.Close()
	}()

	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		if len(msg) < 2 {
			continue
		}

		switch msg[0] {
		case msgKeyDown:
			pressed <- msg[1] & 0xF
		case msgKeyUp:
			released <- msg[1] & 0xF
		}
	}
}

func (w *webDriver) writePump(c *client) {
	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.BinaryMessage, msg); err != nil {
			return
		}
	}
}

// pack converts an RGB frame to 1 bit per pixel for the wire.
func pack(frame []byte) []byte {
	packed := make([]byte, ppu.ScreenWidth*ppu.ScreenHeight/8)
	for i := 0; i < ppu.ScreenWidth*ppu.ScreenHeight; i++ {
		if frame[i*3] != 0 {
			packed[i/8] |= 0x80 >> (i % 8)
		}
	}
	return packed
}

const page = `<!DOCTYPE html>
<html>
<head>
<title>go-chip8</title>
<style>
body { background: #222; margin: 0; display: flex; justify-content: center; align-items: center; height: 100vh; }
canvas { image-rendering: pixelated; width: 80vw; }
</style>
</head>
<body>
<canvas id="screen" width="64" height="32"></canvas>
<script>
const keymap = {
  "1": 0x1, "2": 0x2, "3": 0x3, "4": 0xC,
  "q": 0x4, "w": 0x5, "e": 0x6, "r": 0xD,
  "a": 0x7, "s": 0x8, "d": 0x9, "f": 0xE,
  "z": 0xA, "x": 0x0, "c": 0xB, "v": 0xF,
};
const canvas = document.getElementById("screen");
const ctx = canvas.getContext("2d");
const img = ctx.createImageData(64, 32);
const ws = new WebSocket("ws://" + location.host + "/ws");
ws.binaryType = "arraybuffer";
ws.onmessage = (e) => {
  const data = new Uint8Array(e.data);
  if (data[0] === 0x01) {
    for (let i = 0; i < 64 * 32; i++) {
      const on = (data[1 + (i >> 3)] >> (7 - (i & 7))) & 1;
      img.data[i * 4] = img.data[i * 4 + 1] = img.data[i * 4 + 2] = on ? 255 : 0;
      img.data[i * 4 + 3] = 255;
    }
    ctx.putImageData(img, 0, 0);
  } else if (data[0] === 0x02) {
    document.title = new TextDecoder().decode(data.slice(1));
  }
};
const send = (type, key) => {
  if (ws.readyState === WebSocket.OPEN) ws.send(new Uint8Array([type, key]));
};
document.addEventListener("keydown", (e) => {
  if (e.key in keymap) send(0x01, keymap[e.key]);
});
document.addEventListener("keyup", (e) => {
  if (e.key in keymap) send(0x02, keymap[e.key]);
});
</script>
</body>
</html>`
