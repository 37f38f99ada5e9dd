package main

import (
	"fmt"
	"log"
	"os"

	"github.com/gorilla/websocket"

	"webpong/internal/ansii"
	"webpong/internal/netwrk"
	"webpong/internal/pong"
	"webpong/internal/session"
)

// How far one keypress moves the paddle, in court units.
const paddleStep = 0.04

func main() {
	if len(os.Args) < 3 {
		fmt.Println("usage: client <host|p1|p2> <matchId> [server-address]")
		os.Exit(1)
	}
	role, matchID := os.Args[1], os.Args[2]
	server := "127.0.0.1:8080"
	if len(os.Args) > 3 {
		server = os.Args[3]
	}

	conn, _, err := websocket.DefaultDialer.Dial("ws://"+server+"/ws", nil)
	if err != nil {
		log.Panic("Failed to connect to server: ", err)
	}
	defer conn.Close()

	join, err := netwrk.NewMessage(netwrk.TypeJoin, netwrk.Join{Role: role, MatchID: matchID})
	if err != nil {
		log.Panic(err)
	}
	if err := conn.WriteJSON(join); err != nil {
		log.Panic("Failed to join match: ", err)
	}

	egress := make(chan netwrk.Message, 8)
	quit := make(chan string, 4)

	prev, err := ansii.MakeTermRaw()
	if err != nil {
		log.Panic("Failed to make terminal raw: ", err)
	}
	defer ansii.RestoreTerm(prev)

	os.Stdout.WriteString(string(ansii.Screen.HideCursor))
	defer os.Stdout.WriteString(string(ansii.Screen.ShowCursor))

	// Network reader
	go func() {
		for {
			var msg netwrk.Message
			if err := conn.ReadJSON(&msg); err != nil {
				quit <- "disconnected from server"
				return
			}
			handleServerMessage(msg, quit)
		}
	}()

	// Network writer
	go func() {
		for msg := range egress {
			if err := conn.WriteJSON(msg); err != nil {
				quit <- "disconnected from server"
				return
			}
		}
	}()

	// Input handler
	go func() {
		paddleY := 0.5
		buf := make([]byte, 3)
		for {
			n, err := os.Stdin.Read(buf)
			if err != nil {
				quit <- "stdin closed"
				return
			}
			paddleY = handleGameInput(buf[:n], role, paddleY, egress, quit)
		}
	}()

	reason := <-quit

	ansii.RestoreTerm(prev)
	os.Stdout.WriteString(string(ansii.Screen.ClearScreen))
	os.Stdout.WriteString(string(ansii.Screen.PlaceCursor(1, 1)))
	fmt.Println(reason)
}

func handleServerMessage(msg netwrk.Message, quit chan string) {
	switch msg.Type {
	case netwrk.TypeState:
		var state pong.Snapshot
		if err := msg.Decode(&state); err != nil {
			return
		}
		render(state)
	case netwrk.TypeMatchEnded:
		quit <- "match ended"
	}
}

// handleGameInput maps raw key bytes to paddle movement and match control
// and returns the updated local paddle position.
func handleGameInput(buf []byte, role string, paddleY float64, egress chan netwrk.Message, quit chan string) float64 {
	if len(buf) == 0 {
		return paddleY
	}

	move := 0.0
	switch buf[0] {
	case 'w':
		move = -paddleStep
	case 's':
		move = paddleStep
	case 'e':
		if role == session.RoleHost {
			msg, err := netwrk.NewMessage(netwrk.TypeEndMatch, nil)
			if err == nil {
				egress <- msg
			}
		}
		return paddleY
	case 'q':
		quit <- "quit"
		return paddleY
	case 27:
		// Arrow keys arrive as a 3-byte escape sequence.
		if len(buf) >= 3 && buf[1] == '[' {
			switch buf[2] {
			case 'A':
				move = -paddleStep
			case 'B':
				move = paddleStep
			}
		}
	}
	if move == 0 {
		return paddleY
	}

	paddleY += move
	if paddleY < 0 {
		paddleY = 0
	}
	if paddleY > 1 {
		paddleY = 1
	}

	msg, err := netwrk.NewMessage(netwrk.TypePaddle, netwrk.Paddle{Y: paddleY})
	if err == nil {
		egress <- msg
	}
	return paddleY
}

func render(s pong.Snapshot) {
	f := ansii.NewFrame()
	f.Clear()

	f.DrawBox(ansii.Offset{X: 0, Y: 0}, f.Height, f.Width, ansii.Colors.White)

	paddleCells := int(2 * pong.PaddleHalfHeight * float64(f.Height))
	if paddleCells < 2 {
		paddleCells = 2
	}
	f.DrawBox(ansii.Offset{X: pong.LeftPaddleX, Y: s.Paddle1Y - pong.PaddleHalfHeight}, paddleCells, 1, ansii.Colors.Cyan)
	f.DrawBox(ansii.Offset{X: pong.RightPaddleX, Y: s.Paddle2Y - pong.PaddleHalfHeight}, paddleCells, 1, ansii.Colors.Cyan)

	f.DrawPixel(ansii.Offset{X: s.BallX, Y: s.BallY}, ansii.Colors.Purple)

	f.DrawText(ansii.Offset{X: 0.46, Y: 0.03}, fmt.Sprintf("%d : %d", s.Score1, s.Score2), ansii.Styles.Bold)
	f.DrawText(ansii.Offset{X: 0.02, Y: 0.97}, "w/s move - e end match - q quit", ansii.Styles.Plain)

	f.Flush()
}
