// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store persists the snapshot document.

The whole system's state is one JSON document (models.Snapshot), loaded once
at startup and fully rewritten on every mutation. That gives
crash-consistency at operation granularity: an abrupt termination can lose
at most the last write, never produce partial state.

Three backends implement the Store interface:

  - FileStore: a JSON file, replaced atomically via temp-file + rename.
  - SQLStore with sqlite (modernc.org/sqlite, pure Go): the default; the
    document lives in a single-row table rewritten per save.
  - SQLStore with postgres (lib/pq): same table, for deployments that
    already run a database.

Select one with Open("file"|"sqlite"|"postgres", url). Load returns
ErrNoSnapshot on first run.
*/
package store
