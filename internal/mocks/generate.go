// Package mocks provides mock implementations for testing the passd services.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for
// the upstream consumer interfaces. The mocks are generated using go:generate
// directives and are committed so tests build without a codegen step.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	api := mocks.NewMockDirectoryAPI(ctrl)
//	api.EXPECT().ListBuildings(gomock.Any(), "T1", gomock.Any()).Return(nodes, nil)
package mocks

// Generate mocks for the upstream consumer interfaces from internal/service:
// TokenExchanger (CertificateLogin), DirectoryAPI (ListBuildings, ListFloors,
// ListRooms, RoomBalance) and ProfileAPI (MakeCodeInfo, LoginInfo).
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=api_mock.go github.com/huihutong/passd/internal/service TokenExchanger,DirectoryAPI,ProfileAPI
