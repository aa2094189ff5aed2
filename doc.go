// Package custard hosts crates of recurring tasks and shared datachunks.
//
// A crate attaches its task and datachunk types to the loader registry; a
// manifest then names the instances to bring up. Each task runs one cycle
// at a time and reports a control-flow outcome (continue, reload, full or
// partial reload, stop this, stop all, err) that the supervisor turns into
// reload and stop actions across tasks.
//
//	srv := custard.New()
//	_ = demo.Attach(srv.Registry())
//	m, _ := srv.LoadManifest(ctx, "manifest.yaml")
//	rt, _ := srv.NewRuntime(ctx)
//	_ = rt.Deploy(ctx, m)
//	_ = rt.Start(ctx)
//	err := rt.Wait(ctx)
package custard
