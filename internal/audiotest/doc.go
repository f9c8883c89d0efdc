// SPDX-License-Identifier: EPL-2.0

// Package audiotest holds test doubles shared by the audedit packages:
// generated sources and buffers, an in-memory Codec and a Player that
// records what it was asked to play.
package audiotest
