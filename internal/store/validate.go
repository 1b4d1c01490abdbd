package store

// sizeSlackBytes is the tolerance used when comparing meta.json's recorded
// size_bytes against the actual on-disk footprint; filesystem block
// rounding and concurrent writer flushes make exact equality brittle.
const sizeSlackBytes = 4096

// Validate checks a session's internal consistency: meta.json parses,
// files_indexed/chunks_created match the index contents, and size_bytes
// matches the actual on-disk footprint within slack.
func Validate(indexRoot, sessionID string) (ValidationReport, error) {
	report := ValidationReport{}

	meta, err := readMeta(indexRoot, sessionID)
	if err != nil {
		report.Problems = append(report.Problems, "meta.json does not parse: "+err.Error())
		return report, nil
	}
	report.MetaParses = true

	s, err := OpenIgnoringSchema(indexRoot, sessionID)
	if err != nil {
		report.Problems = append(report.Problems, "index cannot be opened: "+err.Error())
		return report, nil
	}
	defer s.Close()

	paths, err := s.AllFilePaths()
	if err != nil {
		report.Problems = append(report.Problems, "cannot enumerate file paths: "+err.Error())
		return report, nil
	}
	report.ActualFilesIndexed = len(paths)
	report.FilesIndexedOK = report.ActualFilesIndexed == meta.FilesIndexed
	if !report.FilesIndexedOK {
		report.Problems = append(report.Problems, "files_indexed mismatch")
	}

	docCount, err := s.DocCount()
	if err != nil {
		report.Problems = append(report.Problems, "cannot count documents: "+err.Error())
		return report, nil
	}
	report.ActualChunksCount = docCount
	report.ChunksCreatedOK = report.ActualChunksCount == meta.ChunksCreated
	if !report.ChunksCreatedOK {
		report.Problems = append(report.Problems, "chunks_created mismatch")
	}

	actualSize, err := SizeOnDisk(indexRoot, sessionID)
	if err != nil {
		report.Problems = append(report.Problems, "cannot measure size on disk: "+err.Error())
		return report, nil
	}
	report.ActualSizeBytes = actualSize
	diff := actualSize - meta.SizeBytes
	if diff < 0 {
		diff = -diff
	}
	report.SizeBytesOK = diff <= sizeSlackBytes
	if !report.SizeBytesOK {
		report.Problems = append(report.Problems, "size_bytes mismatch beyond slack")
	}

	report.Valid = report.MetaParses && report.FilesIndexedOK && report.ChunksCreatedOK && report.SizeBytesOK
	return report, nil
}

// AutoRepair recomputes files_indexed, chunks_created, and size_bytes from
// the actual index/filesystem state and rewrites them into meta.json.
func AutoRepair(indexRoot, sessionID string) error {
	meta, err := readMeta(indexRoot, sessionID)
	if err != nil {
		return err
	}

	s, err := OpenIgnoringSchema(indexRoot, sessionID)
	if err != nil {
		return err
	}
	defer s.Close()

	paths, err := s.AllFilePaths()
	if err != nil {
		return err
	}
	docCount, err := s.DocCount()
	if err != nil {
		return err
	}
	size, err := SizeOnDisk(indexRoot, sessionID)
	if err != nil {
		return err
	}

	meta.FilesIndexed = len(paths)
	meta.ChunksCreated = docCount
	meta.SizeBytes = size

	return writeMeta(indexRoot, sessionID, meta)
}
