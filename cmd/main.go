package main

import (
	"context"
	"log"
	"os"
	"os/signal"

	"github.com/jonboulle/clockwork"

	"PairTalk/client/internal/api"
	"PairTalk/client/internal/auth"
	"PairTalk/client/internal/config"
	"PairTalk/client/internal/services"
	"PairTalk/client/internal/socket"
	"PairTalk/client/internal/store"
)

func main() {
	cfg := config.Load()

	identity := auth.NewIdentity()
	client := api.NewClient(cfg.APIBaseURL, identity.Token)
	account := services.NewAccountService(client, identity)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := account.SignIn(ctx, cfg.Email, cfg.Password); err != nil {
		log.Fatalf("Sign in failed: %s", err)
	}

	clock := clockwork.NewRealClock()
	directory := store.NewDirectory()
	timeline := store.NewTimeline(clock)
	push := socket.NewClient(cfg.SocketURL, identity.Token)

	engine := services.NewChatEngine(client, push, identity, directory, timeline, func(text string) {
		log.Printf("Notice: %s", text)
	})

	if err := engine.RefreshChats(ctx); err != nil {
		log.Fatalf("Failed to load chats: %s", err)
	}
	log.Printf("Loaded %d chats", len(directory.List()))

	go push.Run(ctx)
	go engine.Run(ctx, push.Events())

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop

	log.Println("Stopping the client...")
	cancel()
	push.Close()
	log.Println("Client has been successfully stopped")
}
