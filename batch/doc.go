// Package batch processes a directory of PDF files into per-document
// artifacts: one JSON (or markdown, or plain-text) file per input PDF,
// named after the input file.
//
// Documents are independent units of work. The runner dispatches each file
// to a bounded worker pool, recovers panics inside a document into that
// document's Result, and never lets one failure abort its siblings:
//
//	runner, err := batch.New(batch.DefaultConfig("./pdfs"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	results, err := runner.Run(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(batch.Summarize(results))
package batch
