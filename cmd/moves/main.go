// Command moves is the CLI surface: speaker profile management, the
// offline section-processing step, settings editing, and the live
// presentation-control session.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"moves/internal/asr"
	"moves/internal/controller"
	"moves/internal/datahandler"
	"moves/internal/keyemit"
	"moves/internal/llm"
	llmollama "moves/internal/llm/ollama"
	llmopenai "moves/internal/llm/openai"
	"moves/internal/micaudio"
	"moves/internal/sectionproducer"
	"moves/internal/settings"
	"moves/internal/speaker"
	"moves/pkg/embeddings"
	embollama "moves/pkg/embeddings/ollama"
	embopenai "moves/pkg/embeddings/openai"
	"moves/pkg/semantic"
	"moves/pkg/similarity"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "speaker":
		err = runSpeaker(os.Args[2:])
	case "presentation":
		err = runPresentation(os.Args[2:])
	case "settings":
		err = runSettings(os.Args[2:])
	default:
		usage()
		os.Exit(1)
	}

	if err != nil {
		log.Printf("[moves] %v", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: moves speaker {add,edit,list,show,process,delete} | presentation control <speaker> | settings {list,set,unset}")
}

// --- speaker ---

func runSpeaker(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("speaker: missing subcommand")
	}

	switch args[0] {
	case "add":
		fs := flag.NewFlagSet("speaker add", flag.ExitOnError)
		name := fs.String("name", "", "speaker display name")
		presentation := fs.String("presentation", "", "path to slide deck PDF")
		transcript := fs.String("transcript", "", "path to transcript PDF")
		fs.Parse(args[1:])
		if *name == "" || *presentation == "" || *transcript == "" {
			return fmt.Errorf("speaker add: -name, -presentation, and -transcript are required")
		}
		sp, err := speaker.Add(*name, *presentation, *transcript)
		if err != nil {
			return err
		}
		log.Printf("[speaker] added %s (%s)", sp.Name, sp.SpeakerID)
		return nil

	case "edit":
		fs := flag.NewFlagSet("speaker edit", flag.ExitOnError)
		presentation := fs.String("presentation", "", "new path to slide deck PDF")
		transcript := fs.String("transcript", "", "new path to transcript PDF")
		fs.Parse(args[1:])
		if fs.NArg() != 1 {
			return fmt.Errorf("speaker edit: usage: speaker edit <speaker> [-presentation path] [-transcript path]")
		}
		sp, err := resolveOne(fs.Arg(0))
		if err != nil {
			return err
		}
		sp, err = speaker.Edit(sp, *presentation, *transcript)
		if err != nil {
			return err
		}
		log.Printf("[speaker] updated %s (%s)", sp.Name, sp.SpeakerID)
		return nil

	case "list":
		speakers, err := speaker.List()
		if err != nil {
			return err
		}
		for _, sp := range speakers {
			fmt.Printf("%s\t%s\n", sp.SpeakerID, sp.Name)
		}
		return nil

	case "show":
		if len(args) != 2 {
			return fmt.Errorf("speaker show: usage: speaker show <speaker>")
		}
		sp, err := resolveOne(args[1])
		if err != nil {
			return err
		}
		fmt.Printf("name: %s\nspeaker_id: %s\nsource_presentation: %s\nsource_transcript: %s\n",
			sp.Name, sp.SpeakerID, sp.SourcePresentation, sp.SourceTranscript)
		return nil

	case "delete":
		if len(args) != 2 {
			return fmt.Errorf("speaker delete: usage: speaker delete <speaker>")
		}
		sp, err := resolveOne(args[1])
		if err != nil {
			return err
		}
		if err := speaker.Delete(sp); err != nil {
			return err
		}
		log.Printf("[speaker] deleted %s (%s)", sp.Name, sp.SpeakerID)
		return nil

	case "process":
		if len(args) != 2 {
			return fmt.Errorf("speaker process: usage: speaker process <speaker>")
		}
		sp, err := resolveOne(args[1])
		if err != nil {
			return err
		}
		return runProcess(sp)

	default:
		return fmt.Errorf("speaker: unknown subcommand %q", args[0])
	}
}

func resolveOne(pattern string) (speaker.Speaker, error) {
	result, err := speaker.Resolve(pattern)
	if err != nil {
		return speaker.Speaker{}, err
	}
	switch result.Kind {
	case speaker.ResolveNotFound:
		return speaker.Speaker{}, fmt.Errorf("speaker: no speaker matches %q", pattern)
	case speaker.ResolveAmbiguous:
		ids := make([]string, len(result.Matches))
		for i, m := range result.Matches {
			ids[i] = m.SpeakerID
		}
		return speaker.Speaker{}, fmt.Errorf("speaker: %q matches multiple speakers, specify a speaker_id: %v", pattern, ids)
	default:
		return result.Speaker, nil
	}
}

func runProcess(sp speaker.Speaker) error {
	s, err := settings.Load()
	if err != nil {
		return err
	}
	if s.Model == "" {
		return fmt.Errorf("speaker process: no LLM model configured; run `moves settings set model <name>`")
	}

	provider, err := newLLMProvider(s)
	if err != nil {
		return err
	}

	producer := sectionproducer.New(provider, s.Model)
	result, err := speaker.Process(context.Background(), producer, sp)
	if err != nil {
		return err
	}
	log.Printf("[speaker] processed %s: %d sections (presentation from %s, transcript from %s)",
		sp.Name, result.SectionCount, result.PresentationFrom, result.TranscriptFrom)
	return nil
}

func newLLMProvider(s settings.Settings) (llm.Provider, error) {
	if s.Key != "" {
		return llmopenai.New(s.Key, s.Model)
	}
	return llmollama.New("", s.Model)
}

// --- presentation ---

func runPresentation(args []string) error {
	if len(args) < 2 || args[0] != "control" {
		return fmt.Errorf("presentation: usage: presentation control <speaker>")
	}

	sp, err := resolveOne(args[1])
	if err != nil {
		return err
	}

	sections, err := speaker.LoadSections(sp)
	if err != nil {
		return err
	}
	if len(sections) == 0 {
		return fmt.Errorf("presentation control: %s has no sections", sp.Name)
	}

	s, err := settings.Load()
	if err != nil {
		return err
	}

	embedProvider, err := newEmbeddingsProvider(s)
	if err != nil {
		return err
	}

	root, err := datahandler.Root()
	if err != nil {
		return err
	}
	modelsDir := filepath.Join(root, "models", "asr")

	asrStream, err := asr.New(asr.Config{
		Models: asr.ModelPaths{
			Tokens:  filepath.Join(modelsDir, "tokens.txt"),
			Encoder: filepath.Join(modelsDir, "encoder.onnx"),
			Decoder: filepath.Join(modelsDir, "decoder.onnx"),
			Joiner:  filepath.Join(modelsDir, "joiner.onnx"),
		},
		SampleRate: micaudio.SampleRate,
	})
	if err != nil {
		return fmt.Errorf("presentation control: %w", err)
	}
	defer asrStream.Close()

	emitter, err := newKeyEmitter()
	if err != nil {
		return fmt.Errorf("presentation control: %w", err)
	}
	defer closeEmitter(emitter)

	engine := similarity.New(semantic.New(embedProvider))
	ctrl := controller.New(sections, sections[0], engine, emitter, controller.WindowSize)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Printf("[moves] shutting down")
		cancel()
	}()

	log.Printf("[moves] controlling presentation for %s (%d sections)", sp.Name, len(sections))
	return ctrl.Control(ctx, asrStream)
}

func newEmbeddingsProvider(s settings.Settings) (embeddings.Provider, error) {
	if s.Key != "" {
		return embopenai.New(s.Key, string(embopenai.DefaultModel))
	}
	return embollama.New("", "nomic-embed-text")
}

func newKeyEmitter() (keyemit.Emitter, error) {
	return keyemit.NewX11Emitter()
}

func closeEmitter(e keyemit.Emitter) {
	type closer interface{ Close() }
	if c, ok := e.(closer); ok {
		c.Close()
	}
}

// --- settings ---

func runSettings(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("settings: missing subcommand")
	}

	switch args[0] {
	case "list":
		s, err := settings.Load()
		if err != nil {
			return err
		}
		fmt.Printf("model: %s\nkey: %s\n", s.Model, s.Key)
		return nil
	case "set":
		if len(args) != 3 {
			return fmt.Errorf("settings set: usage: settings set <key> <value>")
		}
		return settings.Set(args[1], args[2])
	case "unset":
		if len(args) != 2 {
			return fmt.Errorf("settings unset: usage: settings unset <key>")
		}
		return settings.Unset(args[1])
	default:
		return fmt.Errorf("settings: unknown subcommand %q", args[0])
	}
}
