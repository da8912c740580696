package pager

import (
	"io"
	"os"

	"github.com/pkg/errors"
)

const (
	PageSize      = 4096
	TableMaxPages = 400
)

// Page is one resident PageSize buffer. Callers mutate Data in place; the
// pager writes it back verbatim on flush.
type Page struct {
	Data    [PageSize]byte
	PageNum uint32
}

// Pager presents the database file as an array of PageSize buffers indexed
// by page number. Pages are cached for the lifetime of the pager; there is
// no eviction.
type Pager struct {
	file       *os.File
	fileLength int64
	pages      [TableMaxPages]*Page
	NumPages   uint32
}

// Open opens or creates the database file and computes how many pages it
// currently holds. A file whose length is not a whole number of pages is
// rejected as corrupt.
func Open(path string) (*Pager, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0600)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, errors.Wrapf(err, "stat %s", path)
	}
	fileLength := fi.Size()
	if fileLength%PageSize != 0 {
		f.Close()
		return nil, errors.Errorf("db file is not a whole number of pages (%d bytes)", fileLength)
	}

	return &Pager{
		file:       f,
		fileLength: fileLength,
		NumPages:   uint32(fileLength / PageSize),
	}, nil
}

// GetPage returns the resident buffer for pageNum, reading it from disk on
// first access. A page number at or beyond the current end of file gets a
// zeroed buffer the caller must initialize; NumPages grows to cover it.
func (p *Pager) GetPage(pageNum uint32) (*Page, error) {
	if pageNum >= TableMaxPages {
		return nil, errors.Errorf("page %d out of bounds (max %d)", pageNum, TableMaxPages)
	}

	if p.pages[pageNum] == nil {
		pg := &Page{PageNum: pageNum}
		pagesOnDisk := uint32(p.fileLength / PageSize)
		if pageNum < pagesOnDisk {
			off := int64(pageNum) * PageSize
			if _, err := p.file.Seek(off, io.SeekStart); err != nil {
				return nil, errors.Wrapf(err, "seek page %d", pageNum)
			}
			if _, err := io.ReadFull(p.file, pg.Data[:]); err != nil {
				return nil, errors.Wrapf(err, "read page %d", pageNum)
			}
		}
		p.pages[pageNum] = pg
		if pageNum >= p.NumPages {
			p.NumPages = pageNum + 1
		}
	}

	return p.pages[pageNum], nil
}

// FlushPage writes the resident buffer for pageNum back to disk. Flushing a
// page that was never fetched is an error.
func (p *Pager) FlushPage(pageNum uint32) error {
	pg := p.pages[pageNum]
	if pg == nil {
		return errors.Errorf("flush of non-resident page %d", pageNum)
	}
	off := int64(pageNum) * PageSize
	if _, err := p.file.Seek(off, io.SeekStart); err != nil {
		return errors.Wrapf(err, "seek page %d", pageNum)
	}
	if _, err := p.file.Write(pg.Data[:]); err != nil {
		return errors.Wrapf(err, "write page %d", pageNum)
	}
	if off+PageSize > p.fileLength {
		p.fileLength = off + PageSize
	}
	return nil
}

// UnusedPageNum returns the next free page number. Pages grow monotonically;
// there is no free list.
func (p *Pager) UnusedPageNum() uint32 {
	return p.NumPages
}

// FlushAll writes every resident page back to disk and syncs the file.
func (p *Pager) FlushAll() error {
	for i := uint32(0); i < p.NumPages; i++ {
		if p.pages[i] == nil {
			continue
		}
		if err := p.FlushPage(i); err != nil {
			return err
		}
	}
	return errors.Wrap(p.file.Sync(), "sync")
}

// Close flushes every resident page, releases the buffers and closes the
// underlying file.
func (p *Pager) Close() error {
	if err := p.FlushAll(); err != nil {
		return err
	}
	for i := range p.pages {
		p.pages[i] = nil
	}
	return errors.Wrap(p.file.Close(), "close db file")
}

// FileSize reports the current length of the backing file.
func (p *Pager) FileSize() (int64, error) {
	fi, err := p.file.Stat()
	if err != nil {
		return 0, errors.Wrap(err, "stat")
	}
	return fi.Size(), nil
}
