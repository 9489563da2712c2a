// Command eventwatch tails the live post-event feed. Useful for
// checking that create/update/delete events flow through Redis to
// WebSocket clients.
package main

import (
	"encoding/json"
	"flag"
	"log"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
)

type postEvent struct {
	Type  string    `json:"type"`
	ID    string    `json:"post_id"`
	Slug  string    `json:"slug"`
	Title string    `json:"title"`
	At    time.Time `json:"at"`
}

func main() {
	host := flag.String("host", "localhost:8486", "API server host")
	flag.Parse()

	u := url.URL{Scheme: "ws", Host: *host, Path: "/api/ws/events"}
	log.Printf("Connecting to %s", u.String())

	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		log.Fatalf("Connection failed: %v", err)
	}
	defer func() { _ = conn.Close() }()
	log.Println("Connected; waiting for events...")

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			_, payload, err := conn.ReadMessage()
			if err != nil {
				log.Printf("Read error: %v", err)
				return
			}
			var ev postEvent
			if err := json.Unmarshal(payload, &ev); err != nil {
				log.Printf("Skipping unparseable message: %s", payload)
				continue
			}
			log.Printf("%-13s %s  %q  (%s)", ev.Type, ev.ID, ev.Title, ev.At.Format(time.RFC3339))
		}
	}()

	select {
	case <-done:
	case <-interrupt:
		log.Println("Closing connection...")
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		select {
		case <-done:
		case <-time.After(time.Second):
		}
	}
}
