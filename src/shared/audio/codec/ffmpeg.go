package codec

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/apex/log"
	"github.com/cockroachdb/errors"
	"github.com/veedubyou/vocal-split/src/shared/audio"
	"github.com/veedubyou/vocal-split/src/shared/executor"
	"github.com/veedubyou/vocal-split/src/shared/lib/cerr"
	"github.com/veedubyou/vocal-split/src/shared/lib/errors/mark"
	"github.com/veedubyou/vocal-split/src/shared/lib/working_dir"
	"github.com/veedubyou/vocal-split/src/shared/vocalsplit/spliterrors"
)

var _ Codec = FFmpegCodec{}

// encoders by output extension, anything else is left to ffmpeg's default for the container
var encoderByExt = map[string]string{
	".ogg":  "libvorbis",
	".mp3":  "libmp3lame",
	".wav":  "pcm_s16le",
	".flac": "flac",
}

type probeOutput struct {
	Streams []struct {
		CodecName  string `json:"codec_name"`
		SampleRate string `json:"sample_rate"`
		Channels   int    `json:"channels"`
	} `json:"streams"`
}

func NewFFmpegCodec(workingDirStr string, ffmpegBinPath string, ffprobeBinPath string, executor executor.Executor) (FFmpegCodec, error) {
	workingDir, err := working_dir.NewWorkingDir(workingDirStr)
	if err != nil {
		return FFmpegCodec{}, cerr.Wrap(err).Error("Failed to set up the codec working dir")
	}

	return FFmpegCodec{
		workingDir:     workingDir,
		ffmpegBinPath:  ffmpegBinPath,
		ffprobeBinPath: ffprobeBinPath,
		executor:       executor,
	}, nil
}

type FFmpegCodec struct {
	workingDir     working_dir.WorkingDir
	ffmpegBinPath  string
	ffprobeBinPath string
	executor       executor.Executor
}

func (f FFmpegCodec) Decode(ctx context.Context, sourcePath string) (audio.Buffer, error) {
	errctx := cerr.Field("source_path", sourcePath)

	format, err := f.probe(ctx, sourcePath)
	if err != nil {
		return audio.Buffer{}, errctx.Wrap(err).Error("Failed to probe source audio")
	}

	logger := log.WithFields(log.Fields{
		"sourcePath": sourcePath,
		"sampleRate": format.SampleRate,
		"channels":   format.Channels,
	})
	logger.Info("Decoding audio")

	args := []string{
		"-v", "error",
		"-i", sourcePath,
		"-f", "s16le",
		"-acodec", "pcm_s16le",
		"-ar", strconv.Itoa(format.SampleRate),
		"-ac", strconv.Itoa(format.Channels),
		"pipe:1",
	}

	cmd := f.executor.CommandContext(ctx, f.ffmpegBinPath, args...)
	cmd.SetDir(f.workingDir.Root())

	pcm, err := cmd.Output()
	if err != nil {
		return audio.Buffer{}, codecError(err, errctx.Field("ffmpeg_args", args), "Failed to decode audio")
	}

	buffer, err := audio.NewBuffer(format, pcm)
	if err != nil {
		return audio.Buffer{}, codecError(err, errctx, "Decoded audio is malformed")
	}

	logger.WithField("durationMs", buffer.DurationMs()).Info("Finished decoding audio")
	return buffer, nil
}

func (f FFmpegCodec) Encode(ctx context.Context, buffer audio.Buffer, destPath string) error {
	errctx := cerr.Field("dest_path", destPath)

	if err := buffer.Format.Validate(); err != nil {
		return codecError(err, errctx, "Cannot encode audio with an invalid format")
	}

	tempDir, cleanUp, err := f.workingDir.MakeTempDir("encode-*")
	if err != nil {
		return errctx.Wrap(err).Error("Failed to make a temp dir for encoding")
	}

	defer cleanUp()

	pcmPath := filepath.Join(tempDir, "input.pcm")
	if err := os.WriteFile(pcmPath, buffer.PCM, 0644); err != nil {
		return mark.Wrap(err, spliterrors.FileOperationMark, "Failed to write raw PCM for encoding")
	}

	args := []string{
		"-v", "error",
		"-y",
		"-f", "s16le",
		"-ar", strconv.Itoa(buffer.Format.SampleRate),
		"-ac", strconv.Itoa(buffer.Format.Channels),
		"-i", pcmPath,
	}

	if encoder, ok := encoderByExt[strings.ToLower(filepath.Ext(destPath))]; ok {
		args = append(args, "-c:a", encoder)
	}

	args = append(args, destPath)

	log.WithFields(log.Fields{
		"destPath":   destPath,
		"durationMs": buffer.DurationMs(),
	}).Info("Encoding audio")

	cmd := f.executor.CommandContext(ctx, f.ffmpegBinPath, args...)
	cmd.SetDir(f.workingDir.Root())

	output, err := cmd.CombinedOutput()
	if err != nil {
		return codecError(err, errctx.Fields(cerr.F{
			"ffmpeg_args":   args,
			"ffmpeg_output": string(output),
		}), fmt.Sprintf("Error occurred while encoding audio: %s", string(output)))
	}

	return nil
}

func (f FFmpegCodec) probe(ctx context.Context, sourcePath string) (audio.Format, error) {
	args := []string{
		"-v", "quiet",
		"-print_format", "json",
		"-show_streams",
		"-select_streams", "a:0",
		sourcePath,
	}

	cmd := f.executor.CommandContext(ctx, f.ffprobeBinPath, args...)
	cmd.SetDir(f.workingDir.Root())

	errctx := cerr.Field("ffprobe_args", args)

	output, err := cmd.Output()
	if err != nil {
		return audio.Format{}, codecError(err, errctx, "Failed to run ffprobe")
	}

	probed := probeOutput{}
	if err := json.Unmarshal(output, &probed); err != nil {
		return audio.Format{}, codecError(err, errctx.Field("ffprobe_output", string(output)), "Failed to read ffprobe output")
	}

	if len(probed.Streams) == 0 {
		err := mark.Message(spliterrors.AudioCodecMark, "No audio stream found")
		return audio.Format{}, errctx.Wrap(err).Error("Source has nothing to decode")
	}

	stream := probed.Streams[0]
	sampleRate, err := strconv.Atoi(stream.SampleRate)
	if err != nil {
		return audio.Format{}, codecError(err, errctx.Field("sample_rate", stream.SampleRate), "Sample rate is not a number")
	}

	format := audio.Format{
		SampleRate: sampleRate,
		Channels:   stream.Channels,
	}

	if err := format.Validate(); err != nil {
		return audio.Format{}, codecError(err, errctx.Field("codec_name", stream.CodecName), "Probed format is unusable")
	}

	return format, nil
}

func codecError(err error, errctx cerr.Context, msg string) error {
	return errctx.Wrap(errors.Mark(err, spliterrors.AudioCodecMark)).Error(msg)
}
