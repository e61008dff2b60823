// Package hithread spawns a goroutine, runs a counted loop on it and a second
// counted loop on the calling goroutine, then joins the spawned goroutine.
//
// Both loops print numbered, labelled lines with a short pause after each
// one. The relative order of the two loops' lines is decided by the
// scheduler; each loop's own lines are always in order. Run returns only
// after the spawned loop has finished, and reports a panic on the spawned
// goroutine as an error matching spawn.ErrPanicked:
//
//	srv, _ := hithread.New()
//	report, err := srv.Run(ctx)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(report.Spawned.Emitted) // 9
package hithread
