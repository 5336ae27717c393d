package main

import (
	"fmt"
	"os"
	"os/exec"
)

func main() {
	fmt.Println("Generating protobuf code with buf...")

	cmd := exec.Command("buf", "generate")
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "")
		_, _ = fmt.Fprintln(os.Stderr, "ERROR: proto generation failed")
		_, _ = fmt.Fprintln(os.Stderr, "")
		_, _ = fmt.Fprintln(os.Stderr, "buf and the Go plugins must be on PATH:")
		_, _ = fmt.Fprintln(os.Stderr, "  go install github.com/bufbuild/buf/cmd/buf@latest")
		_, _ = fmt.Fprintln(os.Stderr, "  go install google.golang.org/protobuf/cmd/protoc-gen-go@v1.36.11")
		_, _ = fmt.Fprintln(os.Stderr, "  go install google.golang.org/grpc/cmd/protoc-gen-go-grpc@v1.6.0")

		os.Exit(1)
	}

	fmt.Println("")
	fmt.Println("Proto files generated in internal/api/v1")
}
