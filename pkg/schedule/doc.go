// Package schedule provides the fixed-delay schedulers the painting driver
// runs on.
//
// [Loop] is a cooperative event loop: tasks are queued with a delay and run
// one at a time on the goroutine that called [Loop.Run]. Nothing blocks
// between frames except the loop itself waiting for the next due task, and
// the loop returns as soon as its context is done.
//
// [Manual] runs nothing on its own. Tests call [Manual.Advance] to execute
// the next task and inspect the delays that were requested.
package schedule
