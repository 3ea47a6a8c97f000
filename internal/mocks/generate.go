package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Source --dir ../domain/standings --output domain/standings --outpkg standingsmock --filename source_mock.go
