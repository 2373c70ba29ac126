// Command codebuddy runs an interactive code evaluation session: it
// submits a student's code file to the tutor engine, relays the
// dialogue on the terminal, flushes the history to the conversation
// store after every exchange and records feedback once the assessment
// is finalized.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/codebuddy/codebuddy-go/internal/config"
	"github.com/codebuddy/codebuddy-go/internal/llm"
	"github.com/codebuddy/codebuddy-go/internal/logger"
	"github.com/codebuddy/codebuddy-go/internal/session"
	"github.com/codebuddy/codebuddy-go/internal/storeclient"
	"github.com/codebuddy/codebuddy-go/internal/tutor"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: codebuddy <code file>")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		logger.L.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	logger.SetLevel(cfg.Log.Level)

	if err := cfg.ValidateLLM(); err != nil {
		logger.L.Error("configuration invalid", "error", err)
		os.Exit(1)
	}

	code, err := os.ReadFile(os.Args[1])
	if err != nil {
		logger.L.Error("failed to read code file", "path", os.Args[1], "error", err)
		os.Exit(1)
	}

	engine := tutor.New(llm.NewClient(cfg.LLM), cfg.LLM)
	client := storeclient.New(cfg.Store.APIURL)
	tracker := tutor.NewTracker()

	sess := session.New()
	sess.Submit(string(code))
	observeLast(tracker, sess)

	recorder := storeclient.NewRecorder(client, sess.ID)

	ctx := context.Background()

	fmt.Println("Welcome to codebuddy - Code Evaluator")
	fmt.Printf("Evaluating %s (conversation %s)\n\n", os.Args[1], sess.ID)

	respond(ctx, engine, tracker, sess)
	flush(ctx, recorder, sess)

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for {
		fmt.Print("You: ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		if input == "quit" || input == "exit" {
			break
		}

		sess.Append(session.RoleUser, input)
		observeLast(tracker, sess)

		respond(ctx, engine, tracker, sess)
		flush(ctx, recorder, sess)

		if tracker.Finalized() {
			collectFeedback(ctx, client, scanner, sess)
			break
		}
	}

	fmt.Println("Session ended.")
}

func respond(ctx context.Context, engine *tutor.Engine, tracker *tutor.Tracker, sess *session.Session) {
	reply := engine.Respond(ctx, sess.Messages)
	sess.Append(session.RoleAssistant, reply)
	observeLast(tracker, sess)
	fmt.Printf("\nAssistant: %s\n\n", reply)
}

func observeLast(tracker *tutor.Tracker, sess *session.Session) {
	if last, ok := sess.Last(); ok {
		tracker.Observe(last)
	}
}

// flush persists the turns added since the last successful flush; the
// store appends whatever it receives, so only the delta goes out.
// Persistence failures are logged but never interrupt the
// conversation; the recorder retries the unsaved turns next time.
func flush(ctx context.Context, recorder *storeclient.Recorder, sess *session.Session) {
	if err := recorder.Flush(ctx, sess.Messages); err != nil {
		logger.L.Warn("failed to save conversation", "conversation_id", sess.ID, "error", err)
	}
}

func collectFeedback(ctx context.Context, client *storeclient.Client, scanner *bufio.Scanner, sess *session.Session) {
	fmt.Println("The evaluation is finalized. Any feedback about this session? (press Enter to skip)")
	fmt.Print("Feedback: ")
	if !scanner.Scan() {
		return
	}
	feedback := strings.TrimSpace(scanner.Text())
	if feedback == "" {
		return
	}
	if err := client.SaveFeedback(ctx, sess.ID, feedback); err != nil {
		logger.L.Warn("failed to save feedback", "conversation_id", sess.ID, "error", err)
		return
	}
	fmt.Println("Thanks, your feedback was recorded.")
}
