/*
Package endpoint provides a structured representation for the two ends of a
macro connect instruction.

An endpoint is usually a bare model id (`GEN1`). Two refinements exist:

  - a name, used when the endpoint is the shared network model and the engine
    must substitute the equipment static id for the `@NAME@` placeholder of the
    connector variables, written `NETWORK(B1)`;
  - an index, used when the endpoint is one slot of a shared aggregator model
    and the engine must substitute the slot for the `@INDEX@` placeholder,
    written `OMEGA_REF[2]`.

This package centralizes formatting, parsing and placeholder expansion so
that the emitters, the resolver and the tests all agree on one notation.
*/
package endpoint
