// Package codegen emits GPU kernel source fragments for neural-mass network
// simulations: signatures, thread guards, time loops, state unpacking,
// coupling accumulation, derivative evaluation, explicit-Euler updates, and
// trace recording. Every fragment is produced by pure text substitution
// driven by a kernel.Model; identical inputs yield byte-identical output.
//
// Per-state-variable and per-coupling-term fragments iterate in the model's
// list order. That order fixes the flattened memory-layout offsets, so every
// fragment generated for the same model agrees on which row a variable
// occupies.
package codegen
