package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
)

var errPasswordMismatch = errors.New("passwords do not match")

// promptNewPassword asks twice with terminal echo disabled.
func promptNewPassword(stdin *os.File, out io.Writer) (string, error) {
	first, err := promptSecret(stdin, out, "Password: ")
	if err != nil {
		return "", err
	}
	second, err := promptSecret(stdin, out, "Repeat password: ")
	if err != nil {
		return "", err
	}
	if first != second {
		return "", errPasswordMismatch
	}
	return first, nil
}

func promptSecret(stdin *os.File, out io.Writer, label string) (string, error) {
	fmt.Fprint(out, label)
	secret, err := readPasswordNoEcho(stdin)
	fmt.Fprintln(out)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(secret), nil
}

// readSecretLine reads byte by byte so consecutive prompts can share one stdin.
func readSecretLine(reader io.Reader) ([]byte, error) {
	line := make([]byte, 0, 32)
	buffer := make([]byte, 1)
	for {
		n, err := reader.Read(buffer)
		if n == 1 {
			if buffer[0] == '\n' {
				break
			}
			line = append(line, buffer[0])
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
	}
	return bytes.TrimRight(line, "\r"), nil
}
