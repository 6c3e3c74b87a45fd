// Package registry tracks exclusive ownership of discrete network
// resources (device ports, VLAN tags, wavelengths, ...) across a cluster
// of cooperating agents. The registry state lives in the shared key-value
// store provided by the kvdb plugin, every agent operates on the same two
// key spaces:
//
//		- allocations: resource ID -> consumer owning it
//		- child sets:  resource ID -> resources registered underneath,
//		               in registration order
//
// Resources form a tree rooted at resmodel.Root. The root child set is
// seeded during plugin initialization, any number of agents can do so
// concurrently or repeatedly with the same outcome.
//
// Mutations run in optimistic transactions of the backing store: a
// transaction commits only if nothing it has read was meanwhile changed by
// another agent, otherwise it aborts with kvstore.ErrConflict and leaves
// no trace. Two agents racing for the last free port therefore never both
// win. The plugin never retries a conflicted transaction on its own.
//
// The configuration is loaded from the config file registry.conf.
//
// Additionally, the package provides REST endpoints for inspecting the
// registry state:
// GET /resreg/v1/registry/children?parent=<resource-id>
// GET /resreg/v1/registry/allocations
//
// Example:
//
//      $ curl localhost:9999/resreg/v1/registry/children?parent=/device1
//      {
//        "Parent": "/device1",
//        "Children": [
//          { "id": "/device1/port1", "type": "port" },
//          { "id": "/device1/port2", "type": "port" }
//        ]
//      }
package registry
