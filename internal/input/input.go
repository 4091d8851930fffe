package input

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
)

// IsStdinPipeOrRedirect returns true if stdin is provided via pipe or redirect
func IsStdinPipeOrRedirect() (bool, error) {
	fi, err := os.Stdin.Stat()
	if err != nil {
		return false, fmt.Errorf("unable to determine if there is piped input: %w", err)
	}

	// note: the absence of a character device is NOT a reliable hint that
	// input is expected on stdin; when run as a subprocess no character
	// device is present either. Checking for a pipe is the most direct way
	// to determine whether bytes *may* show up on stdin.
	return fi.Mode()&os.ModeNamedPipe != 0 || fi.Size() > 0, nil
}

// GetReader returns a reader for a project descriptor, either a file path
// (with ~ expanded) or "-" for stdin.
func GetReader(src string) (io.ReadSeeker, error) {
	switch src {
	case "-":
		return decodeStdin(os.Stdin)
	default:
		fileLocation, err := homedir.Expand(src)
		if err != nil {
			return nil, errors.Wrap(err, fmt.Sprintf("could not read project descriptor; could not expand path: %s", src))
		}

		reader, err := os.Open(fileLocation)
		if err != nil {
			return nil, errors.Wrap(err, fmt.Sprintf("could not read project descriptor; could not open file: %s", fileLocation))
		}
		return reader, nil
	}
}

func decodeStdin(r io.Reader) (io.ReadSeeker, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed reading stdin: %w", err)
	}

	reader := bytes.NewReader(b)
	_, err = reader.Seek(0, io.SeekStart)
	if err != nil {
		return nil, fmt.Errorf("failed to buffer stdin: %w", err)
	}

	return reader, nil
}
