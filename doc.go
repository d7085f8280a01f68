// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

/*
Package ldd defines a concrete type for List Decision Diagrams (LDD), a data
structure used to efficiently represent sets of fixed-length vectors of
non-negative integers.

Basics

An LDD is a canonical, maximally-shared, directed-acyclic structure. Given a
node n, the denotation [[n]] is defined inductively:

	[[FALSE]]           = {}
	[[TRUE]]            = { <> }
	[[node(v, d, r)]]   = { v·x | x in [[d]] } union [[r]]

Most operations over the store return a Handle, a reference-counted token
that keeps a node alive. Bare node identities (unexported type id) are used
internally as borrowed views during recursive descent; they are only ever
safe to hold across the native call stack of an operation, never across an
insert performed by a different call.

Canonicity and sharing

Two handles denote the same set if and only if their underlying node
identities are equal. This canonicity property, called maximal sharing,
is what makes the cache-based operations in this package tractable on
large state spaces.

Automatic memory management

The store owns every node; client code only ever owns Handles. A Handle
auto-releases its protection-set slot when it becomes unreachable (a
runtime finalizer is armed as a backstop), but callers that want
deterministic, eager release should call Handle.Release explicitly -- the
finalizer is a backstop, not the primary release path. See
Store.GarbageCollect for the explicit, deterministic collection entry
point.

Use of build tags

Compiling with the `debug` build tag turns on logging of every garbage
collection cycle: table size and live roots when it starts, collected and
free slots when it ends.
*/
package ldd
