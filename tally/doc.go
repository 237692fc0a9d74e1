// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package tally turns a poll's votes into per-date counts.
// Everything here is a pure function of the poll; nothing touches storage.
package tally
