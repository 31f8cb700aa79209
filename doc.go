/*
Package reactivestore provides the stateless, non-blocking persistence
session core of a relational-mapping layer: entity CRUD, identifier
generation, optimistic-version management, lazy-reference resolution and
compiled-query execution over an asynchronous connection.

A stateless session keeps no long-lived identity cache. Its transient
persistence context maps entity keys to representations only for the span
of one top-level operation and is cleared afterwards, success or failure.

Basic Usage:

	// Build the metamodel
	reg := registry.New()
	orderPersister, _ := mock.NewPersister[Order](persister.Mapping{
	    IDField:      "ID",
	    VersionField: "Version",
	    Properties:   []string{"Total", "Status", "Version"},
	})
	reg.Register(orderPersister)

	// Open a session and run operations
	factory := reactivestore.NewFactory(reg)
	session := factory.OpenStatelessSession(nil)
	defer session.Close()

	order := &Order{Total: 95.50, Status: "new"}
	if err := session.Insert(ctx, order).AwaitUninterruptible().Failure(); err != nil {
	    // handle
	}
	result := session.Get(ctx, "Order", order.ID).AwaitUninterruptible()

Every operation returns a *future.Future; composition points that touch
storage suspend cooperatively and continuations resume when the awaited
step completes. Lazy references resolve through InternalLoad, which decides
between an already-registered representation, one of several proxy shapes,
or a materializing load.

For more information, see the documentation at https://github.com/suparena/reactivestore
*/
package reactivestore
