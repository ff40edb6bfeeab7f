package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name SnapshotRepository --dir ../domain/rotation --output domain/rotation --outpkg rotationmock --filename snapshot_repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/history --output domain/history --outpkg historymock --filename repository_mock.go
