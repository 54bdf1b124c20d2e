// Package encoder pipes rendered frames into an ffmpeg process.
package encoder

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// Frame is one rendered RGBA frame, top row first.
type Frame struct {
	Pixels []byte
	PTS    int64
}

// Config describes the video the encoder writes.
type Config struct {
	Width      int
	Height     int
	FPS        int
	Output     string
	Codec      string
	FFMPEGPath string
}

// numBuffers is the depth of the frame queue between renderer and ffmpeg.
const numBuffers = 3

var errEncoderExited = errors.New("ffmpeg exited before all frames were written")

// FFmpegEncoder feeds raw RGBA frames to ffmpeg over a pipe.
type FFmpegEncoder struct {
	cfg         Config
	frameSize   int
	videoFrames chan *Frame
	pipeWriter  *io.PipeWriter
	ffmpegDone  chan error
	done        chan error
	written     int
}

// NewFFmpegEncoder starts ffmpeg and the goroutine that feeds it.
func NewFFmpegEncoder(cfg Config) (*FFmpegEncoder, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("invalid frame size %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.FPS <= 0 {
		return nil, fmt.Errorf("invalid frame rate %d", cfg.FPS)
	}
	if cfg.Output == "" {
		return nil, fmt.Errorf("no output file")
	}

	pipeReader, pipeWriter := io.Pipe()
	inputArgs, outputArgs := Args(cfg)

	ffmpegCmd := ffmpeg.Input("pipe:", inputArgs).
		Output(cfg.Output, outputArgs).
		OverWriteOutput().WithInput(pipeReader).ErrorToStdOut()
	if cfg.FFMPEGPath != "" {
		ffmpegCmd = ffmpegCmd.SetFfmpegPath(cfg.FFMPEGPath)
	}

	e := &FFmpegEncoder{
		cfg:         cfg,
		frameSize:   cfg.Width * cfg.Height * 4,
		videoFrames: make(chan *Frame, numBuffers),
		pipeWriter:  pipeWriter,
		ffmpegDone:  make(chan error, 1),
		done:        make(chan error, 1),
	}

	go func() {
		err := ffmpegCmd.Run()
		// unblock the writer if ffmpeg stops reading early
		pipeReader.CloseWithError(errEncoderExited)
		e.ffmpegDone <- err
	}()
	go e.run()

	slog.Info("encoder started", "output", cfg.Output, "codec", outputArgs["c:v"], "size", fmt.Sprintf("%dx%d", cfg.Width, cfg.Height), "fps", cfg.FPS)
	return e, nil
}

// Args returns the ffmpeg input and output arguments for cfg.
func Args(cfg Config) (inputArgs ffmpeg.KwArgs, outputArgs ffmpeg.KwArgs) {
	inputArgs = ffmpeg.KwArgs{
		"f":       "rawvideo",
		"pix_fmt": "rgba",
		"s":       fmt.Sprintf("%dx%d", cfg.Width, cfg.Height),
		"r":       fmt.Sprintf("%d", cfg.FPS),
	}

	codec := videoEncoder(cfg.Codec)
	outputArgs = ffmpeg.KwArgs{
		"c:v":     codec,
		"pix_fmt": "yuv420p",
	}
	if codec == "libx265" && strings.EqualFold(filepath.Ext(cfg.Output), ".mp4") {
		outputArgs["tag:v"] = "hvc1"
	}
	return
}

// videoEncoder maps a codec preference to an ffmpeg encoder name. Names
// ffmpeg already knows pass through unchanged.
func videoEncoder(codecPref string) string {
	switch strings.ToLower(codecPref) {
	case "", "h264":
		return "libx264"
	case "hevc", "h265":
		return "libx265"
	default:
		return codecPref
	}
}

func (e *FFmpegEncoder) run() {
	var writeErr error
	for frame := range e.videoFrames {
		if writeErr != nil {
			continue
		}
		if len(frame.Pixels) != e.frameSize {
			writeErr = fmt.Errorf("frame %d has %d bytes, want %d", frame.PTS, len(frame.Pixels), e.frameSize)
			continue
		}
		if _, err := e.pipeWriter.Write(frame.Pixels); err != nil {
			writeErr = fmt.Errorf("error writing frame %d to ffmpeg: %w", frame.PTS, err)
			continue
		}
		e.written++
	}
	e.pipeWriter.Close()

	err := <-e.ffmpegDone
	if err != nil {
		err = fmt.Errorf("ffmpeg failed: %w", err)
	}
	e.done <- errors.Join(writeErr, err)
}

// SendVideo queues one frame. It blocks while the queue is full.
func (e *FFmpegEncoder) SendVideo(frame *Frame) {
	e.videoFrames <- frame
}

// Close flushes the queued frames and waits for ffmpeg to exit.
func (e *FFmpegEncoder) Close() error {
	close(e.videoFrames)
	err := <-e.done
	slog.Info("encoder finished", "output", e.cfg.Output, "frames", e.written)
	return err
}
