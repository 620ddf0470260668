package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mamiri/collectiontools/internal/collectioncopy"
	"github.com/mamiri/collectiontools/internal/config"
	"github.com/mamiri/collectiontools/internal/database"
	"github.com/mamiri/collectiontools/internal/logger"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	sourceFlag := flag.String("source", "", "source collection (prompted when empty)")
	destFlag := flag.String("dest", "", "destination collection (prompted when empty)")
	dryRun := flag.Bool("dry-run", false, "list documents without writing")
	flag.StringVar(&cfg.CredentialsFile, "credentials", cfg.CredentialsFile, "service account key file")
	flag.Parse()

	log := logger.ForRun(logger.New(cfg.LogLevel, cfg.LogFormat), "copy-collection")

	source, destination, err := collectionNames(os.Stdin, os.Stdout, *sourceFlag, *destFlag)
	if err != nil {
		log.Fatalf("Failed to read collection names: %v", err)
	}
	if source == "" || destination == "" {
		log.Warn("Both source and destination collection names are required.")
		return
	}

	ctx := context.Background()

	clients, err := database.InitClients(ctx, cfg, false)
	if err != nil {
		log.Fatalf("Failed to connect to Firestore: %v", err)
	}
	defer clients.Close()

	copier := collectioncopy.NewCopier(clients.Store(), log)
	copier.DryRun = *dryRun

	count, err := copier.Copy(ctx, source, destination)
	if err != nil {
		clients.Close()
		log.Fatalf("Copy aborted after %d documents: %v", count, err)
	}

	log.Infof("Successfully copied %d documents from '%s' → '%s'.", count, source, destination)
}

// collectionNames returns normalized source and destination names, prompting on
// in for whichever one was not passed as a flag
func collectionNames(in io.Reader, out io.Writer, source, destination string) (string, string, error) {
	reader := bufio.NewReader(in)

	var err error
	if strings.TrimSpace(source) == "" {
		if source, err = prompt(reader, out, "Enter the source collection name: "); err != nil {
			return "", "", err
		}
	}
	if strings.TrimSpace(destination) == "" {
		if destination, err = prompt(reader, out, "Enter the destination collection name: "); err != nil {
			return "", "", err
		}
	}

	return collectioncopy.NormalizeCollectionName(source), collectioncopy.NormalizeCollectionName(destination), nil
}

func prompt(r *bufio.Reader, out io.Writer, label string) (string, error) {
	fmt.Fprint(out, label)
	line, err := r.ReadString('\n')
	// A final line without newline still counts
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
