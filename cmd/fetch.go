package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/iksnae/asc/internal"
	"github.com/iksnae/asc/internal/export"
	"github.com/iksnae/asc/internal/report"
	"github.com/iksnae/asc/internal/speech"
	"github.com/iksnae/asc/internal/summary"
	"github.com/spf13/cobra"
)

// replaced in tests
var (
	now           = time.Now
	newSummarizer = func(cfg internal.SummaryConfig) summary.Summarizer {
		return summary.New(cfg)
	}
	newSynthesizer = speech.New
)

type fetchOptions struct {
	noCache bool
}

func newFetchCmd(a *app) *cobra.Command {
	opts := &fetchOptions{}
	defaults := internal.DefaultConfig()

	fetchCmd := &cobra.Command{
		Use:   "fetch [channel]",
		Short: "Fetch a channel log from the OpenDev IRC archive",
		Long: `Fetch the last --hours of messages of an IRC channel from the OpenDev log
archive and write them to a new output directory.

Output types:
  CHAT            the chat as text (default)
  TEXT_SUMMARY    the chat plus a summary written by the summary model
  SPEECH_SUMMARY  the text summary plus a spoken version (summary.wav)

Every run also writes summary.html, which --open-browser opens.`,
		Example: `  asc fetch
  asc fetch --hours 14 --output-type TEXT_SUMMARY "#openstack-ironic"
  asc fetch --output-type SPEECH_SUMMARY --open-browser "#openstack-nova"`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			channel := internal.DefaultChannel
			if len(args) == 1 {
				channel = args[0]
			}
			return runFetch(cmd, a, opts, channel)
		},
	}

	flags := fetchCmd.Flags()
	flags.Int("hours", defaults.Fetch.Hours, "Number of hours to look back for messages")
	flags.String("output-type", defaults.Fetch.OutputType, "Output to generate: "+internal.OutputTypeNames())
	flags.Bool("open-browser", false, "Open the generated HTML file in a web browser")
	flags.String("timezone", defaults.Fetch.Timezone, "Timezone used to show message times")
	flags.StringSlice("ignore-nicks", defaults.Fetch.IgnoreNicks, "Nicknames whose messages are dropped")
	flags.String("summary-model", defaults.Summary.Model, "Model used to generate summaries")
	flags.String("tts-model", defaults.Speech.Model, "Voice model used for speech summaries")
	flags.String("output-directory", defaults.Fetch.OutputDirectory, "Directory to create the output directory in")
	flags.String("file", "", "Write the chat to this file instead of the output directory")
	flags.StringP("format", "f", defaults.Fetch.Format, "Chat format: "+strings.Join(export.Formats, ", "))
	flags.String("archive-url", defaults.Archive.BaseURL, "Base URL of the IRC log archive")
	flags.BoolVar(&opts.noCache, "no-cache", false, "Always download archive pages")

	for key, flag := range map[string]string{
		"fetch.hours":            "hours",
		"fetch.output_type":      "output-type",
		"fetch.open_browser":     "open-browser",
		"fetch.timezone":         "timezone",
		"fetch.ignore_nicks":     "ignore-nicks",
		"summary.model":          "summary-model",
		"speech.model":           "tts-model",
		"fetch.output_directory": "output-directory",
		"fetch.file":             "file",
		"fetch.format":           "format",
		"archive.base_url":       "archive-url",
	} {
		_ = a.v.BindPFlag(key, flags.Lookup(flag))
	}

	return fetchCmd
}

func runFetch(cmd *cobra.Command, a *app, opts *fetchOptions, channel string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	cfg := a.cfg

	outputType, err := internal.ParseOutputType(cfg.Fetch.OutputType)
	if err != nil {
		return err
	}
	exporter, err := export.NewExporter(cfg.Fetch.Format)
	if err != nil {
		return err
	}
	if text, ok := exporter.(*export.TextExporter); ok {
		text.Verbose = a.verbose
	}
	loc, err := time.LoadLocation(cfg.Fetch.Timezone)
	if err != nil {
		return fmt.Errorf("invalid timezone %q: %w", cfg.Fetch.Timezone, err)
	}

	started := now()
	window, err := internal.NewWindow(started, cfg.Fetch.Hours)
	if err != nil {
		return err
	}
	internal.LogInfo("Fetching %d hours from channel %s", cfg.Fetch.Hours, channel)

	clientOpts := []internal.ArchiveOption{
		internal.WithBaseURL(cfg.Archive.BaseURL),
		internal.WithTimeout(cfg.Archive.Timeout),
		internal.WithClock(now),
	}
	if cfg.Cache.Enabled && !opts.noCache {
		cache, err := internal.OpenPageCache(cfg.Cache.Dir)
		if err != nil {
			internal.PrintWarning(cmd.ErrOrStderr(), fmt.Sprintf("Page cache unavailable: %v", err))
		} else {
			defer cache.Close()
			clientOpts = append(clientOpts, internal.WithPageCache(cache))
		}
	}
	client := internal.NewArchiveClient(clientOpts...)

	var transcript *internal.Transcript
	err = internal.ShowProgress(ctx, fmt.Sprintf("Fetching %s", channel), func() error {
		var fetchErr error
		transcript, fetchErr = client.FetchTranscript(ctx, channel, window, cfg.Fetch.IgnoreNicks)
		return fetchErr
	})
	if err != nil {
		return fmt.Errorf("failed to fetch %s: %w", channel, err)
	}

	run, err := internal.NewRun(cfg.Fetch.OutputDirectory, channel, started.In(loc))
	if err != nil {
		return err
	}

	// chat
	fmt.Fprintln(out, transcript.Render(a.verbose))
	chatPath := cfg.Fetch.File
	if chatPath == "" {
		chatPath = run.ChatPath(exporter.Extension())
	}
	if err := exportTranscript(exporter, transcript, chatPath, cfg.Fetch.Format); err != nil {
		return err
	}
	primary := chatPath

	// summary
	var summaryText string
	if outputType.WantsSummary() {
		internal.LogInfo("Summarizing with %s", cfg.Summary.Model)
		summaryText, err = newSummarizer(cfg.Summary).Summarize(ctx, transcript.Render(false), out)
		if err != nil {
			return err
		}
		if err := os.WriteFile(run.SummaryPath(), []byte(summaryText), 0644); err != nil {
			return &internal.ExportError{Format: "md", Path: run.SummaryPath(), Err: err}
		}
		primary = run.SummaryPath()
	}

	// speech
	audioFile := ""
	if outputType.WantsSpeech() {
		synth, err := newSynthesizer(cfg.Speech)
		if err != nil {
			return err
		}
		err = internal.ShowProgress(ctx, "Synthesizing speech", func() error {
			return synth.Synthesize(ctx, speech.PrepareText(summaryText), run.AudioPath())
		})
		if err != nil {
			return err
		}
		audioFile = internal.AudioFilename
		primary = run.AudioPath()
	}

	err = report.WriteFile(run.ReportPath(), report.Page{
		Channel:   channel,
		Day:       transcript.FirstDay(),
		Location:  loc,
		Summary:   summaryText,
		AudioFile: audioFile,
		Messages:  transcript.Messages,
	})
	if err != nil {
		return err
	}

	if cfg.Fetch.OpenBrowser {
		if err := internal.OpenInBrowser(run.ReportPath()); err != nil {
			internal.PrintWarning(cmd.ErrOrStderr(), err.Error())
		}
	}

	internal.PrintSuccess(out, primary)
	return nil
}

func exportTranscript(exporter export.Exporter, transcript *internal.Transcript, path, format string) error {
	f, err := os.Create(path)
	if err != nil {
		return &internal.ExportError{Format: format, Path: path, Err: err}
	}
	if err := exporter.Export(transcript, f); err != nil {
		f.Close()
		return &internal.ExportError{Format: format, Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &internal.ExportError{Format: format, Path: path, Err: err}
	}
	internal.LogDebug("Wrote chat to %s", path)
	return nil
}
