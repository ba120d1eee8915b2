/*
Package streaming groups the lazy stream engine and the sources built on it.

  - stream: Stream type, stages, merges, sources and terminals
  - redislist: Paged reads of a Redis list as a stream of strings or JSON values
  - crontick: Cron schedules as streams of fire times, computed or live

Basic usage:

	s, err := redislist.JSON[Event](client, "events", redislist.DefaultOptions())
	if err != nil {
		return err
	}
	events, err := s.Exc(stream.As[*json.SyntaxError](), stream.RecoverSkip).ToSlice(ctx)

Faults raised by a source or a stage travel with their element, so a bad
record can be skipped or turned into a stop without ending the read early.
*/
package streaming
