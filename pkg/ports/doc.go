/*
Package ports defines the driven ports (interfaces) of the morph engine.

# Key Interfaces

  - ResultStore: persists named transform results (memory, file, Redis).
    Store middleware (masking, encryption) lives in pkg/persistence/middleware.

RunResultStoreContract is a reusable test suite every ResultStore adapter
must pass.
*/
package ports
