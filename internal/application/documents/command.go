package documents

import (
	"context"
	"errors"
	"os/exec"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	DefaultProgram = "node"
	DefaultScript  = "convertToPdf.js"
)

// CommandConverter runs Program with Args followed by the input and output
// paths and waits for it to exit.
type CommandConverter struct {
	Program string
	Args    []string
	Dir     string
	Timeout time.Duration
}

// NewCommandConverter runs `node <script> <in> <out>`.
func NewCommandConverter(script string) *CommandConverter {
	if script == "" {
		script = DefaultScript
	}
	return &CommandConverter{Program: DefaultProgram, Args: []string{script}, Timeout: 2 * time.Minute}
}

func (c *CommandConverter) Convert(ctx context.Context, input string) (string, error) {
	out, err := prepare(input)
	if err != nil {
		return "", err
	}
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	args := append(append([]string{}, c.Args...), input, out)
	cmd := exec.CommandContext(ctx, c.Program, args...)
	cmd.Dir = c.Dir
	cmd.WaitDelay = 2 * time.Second

	start := time.Now()
	output, err := cmd.CombinedOutput()
	if err != nil {
		if ctx.Err() != nil {
			err = errors.Join(err, ctx.Err())
		}
		log.Warn().Err(err).Str("program", c.Program).Str("input", input).Msg("conversion failed")
		return "", &ConversionError{Input: input, Output: out, Detail: string(output), Err: err}
	}
	log.Info().Str("input", input).Str("output", out).Dur("took", time.Since(start)).Msg("document converted")
	return out, nil
}
