// Package gompi adapts a real MPI communicator, via the cgo bindings in
// github.com/sbromberger/gompi, to the comm.Communicator contract so gridla
// can run across machine boundaries.
//
// The adapter is compiled only under the "mpi" build tag, because it needs
// cgo and an MPI installation:
//
//	go build -tags mpi ./...
//
// Collectives reuse the same linear schedules as the in-process engine
// (comm.LinearBcast, comm.LinearReduce), so reduction order — and therefore
// bit-level floating-point results — match between local and MPI runs of
// the same program.
//
// MPI point-to-point calls are not cancellable: the adapter ignores context
// cancellation once a call has been issued. A collective mismatch under MPI
// hangs until the job scheduler tears the process group down, exactly as
// with any MPI program.
package gompi
