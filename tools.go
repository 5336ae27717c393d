//go:build tools

//go:generate go install github.com/bufbuild/buf/cmd/buf@latest
//go:generate go install google.golang.org/protobuf/cmd/protoc-gen-go@v1.36.11
//go:generate go install google.golang.org/grpc/cmd/protoc-gen-go-grpc@v1.6.0
//go:generate go run ./scripts/proto

package tools
