// Package interfaces documents the core abstractions used throughout the application.
//
// # Data Access Interfaces
//
//   - BookReader: list and fetch books (internal/http/stores.go)
//   - BookWriter: create, update and delete books (internal/http/stores.go)
//   - BookStore: BookReader + BookWriter, what BooksController depends on
//   - Pinger: store reachability for the health endpoint
//
// The production implementation of the book interfaces is books.Repository
// (internal/database/books). Tests substitute hand-written stores to force
// failure paths.
//
// # Adding a Second Store Backend
//
//  1. Implement the BookStore methods. Report a missing row as books.ErrNotFound
//     and a duplicate ISBN as books.ErrConflict, wrapping everything else in
//     *books.StorageError.
//
//  2. Add a compile-time check:
//
//     var _ http.BookStore = (*MyStore)(nil)
//
//  3. Construct it in entrypoint.NewRouterConfig.
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces. This catches missing methods at compile time rather than runtime:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// See checks.go.
package interfaces
