// Copyright 2014 The lemochain-core Authors
// This file is part of the lemochain-core library.
//
// The lemochain-core library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The lemochain-core library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the lemochain-core library. If not, see <http://www.gnu.org/licenses/>.

package leveldb

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/LemoFoundationLtd/lemochain-nft/common/log"
	"github.com/LemoFoundationLtd/lemochain-nft/metrics"
	gometrics "github.com/rcrowley/go-metrics"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/errors"
	"github.com/syndtr/goleveldb/leveldb/filter"
	"github.com/syndtr/goleveldb/leveldb/iterator"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/storage"
	"github.com/syndtr/goleveldb/leveldb/util"
)

type LevelDBDatabase struct {
	fn string      // filename for reporting
	db *leveldb.DB // LevelDB instance

	getTimer       gometrics.Timer // latency of get operations
	putTimer       gometrics.Timer // latency of put operations
	delTimer       gometrics.Timer // latency of delete operations
	missMeter      gometrics.Meter // failed get operations
	readMeter      gometrics.Meter // bytes returned by get
	writeMeter     gometrics.Meter // bytes written by put and batch
	compTimeMeter  gometrics.Meter // Meter for measuring the total time spent in database compaction
	compReadMeter  gometrics.Meter // Meter for measuring the data read during compaction
	compWriteMeter gometrics.Meter // Meter for measuring the data written during compaction

	quitLock sync.Mutex      // Mutex protecting the quit channel access
	quitChan chan chan error // Quit channel to stop the metrics collection before closing the database
}

// NewLevelDBDatabase opens or creates a LevelDB in the file.
func NewLevelDBDatabase(file string, cache int, handles int) (*LevelDBDatabase, error) {
	// Ensure we have some minimal caching and file guarantees
	if cache < 16 {
		cache = 16
	}
	if handles < 16 {
		handles = 16
	}
	log.Debug("Allocated cache and file handles", "database", file, "cache", cache, "handles", handles)

	// Open the db and recover any potential corruptions
	db, err := leveldb.OpenFile(file, &opt.Options{
		OpenFilesCacheCapacity: handles,
		BlockCacheCapacity:     cache / 2 * opt.MiB,
		WriteBuffer:            cache / 4 * opt.MiB, // Two of these are used internally
		Filter:                 filter.NewBloomFilter(10),
	})
	if _, corrupted := err.(*errors.ErrCorrupted); corrupted {
		log.Warn("Database is corrupted, try to recover it", "database", file)
		db, err = leveldb.RecoverFile(file, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("open level database %s fail: %v", file, err)
	}
	return &LevelDBDatabase{
		fn: file,
		db: db,
	}, nil
}

// NewMemDatabase creates a LevelDB which lives in memory only. It is used by tests and dry runs
func NewMemDatabase() *LevelDBDatabase {
	db, err := leveldb.Open(storage.NewMemStorage(), nil)
	if err != nil {
		// memory storage never fails to open
		panic(err)
	}
	return &LevelDBDatabase{
		fn: "memory",
		db: db,
	}
}

// Path returns the path to the database directory.
func (db *LevelDBDatabase) Path() string {
	return db.fn
}

// Put puts the given key / value to the queue
func (db *LevelDBDatabase) Put(key []byte, value []byte) error {
	// Measure the database put latency, if requested
	if db.putTimer != nil {
		defer db.putTimer.UpdateSince(time.Now())
	}
	if db.writeMeter != nil {
		db.writeMeter.Mark(int64(len(value)))
	}
	return db.db.Put(key, value, nil)
}

func (db *LevelDBDatabase) Has(key []byte) (bool, error) {
	return db.db.Has(key, nil)
}

// Get returns the given key if it's present. A missing key returns nil value and nil error.
func (db *LevelDBDatabase) Get(key []byte) ([]byte, error) {
	// Measure the database get latency, if requested
	if db.getTimer != nil {
		defer db.getTimer.UpdateSince(time.Now())
	}
	// Retrieve the key and increment the miss counter if not found
	dat, err := db.db.Get(key, nil)
	if err != nil {
		if err == leveldb.ErrNotFound {
			return nil, nil
		}
		if db.missMeter != nil {
			db.missMeter.Mark(1)
		}
		return nil, err
	}

	// Otherwise update the actually retrieved amount of data
	if db.readMeter != nil {
		db.readMeter.Mark(int64(len(dat)))
	}
	return dat, nil
}

// Delete deletes the key from the queue and database
func (db *LevelDBDatabase) Delete(key []byte) error {
	// Measure the database delete latency, if requested
	if db.delTimer != nil {
		defer db.delTimer.UpdateSince(time.Now())
	}
	// Execute the actual operation
	return db.db.Delete(key, nil)
}

func (db *LevelDBDatabase) NewIterator() iterator.Iterator {
	return db.db.NewIterator(nil, nil)
}

// NewIteratorWithPrefix returns a iterator to iterate over subset of database content with a particular prefix.
func (db *LevelDBDatabase) NewIteratorWithPrefix(prefix []byte) iterator.Iterator {
	return db.db.NewIterator(util.BytesPrefix(prefix), nil)
}

func (db *LevelDBDatabase) Close() {
	// Stop the metrics collection to avoid internal database races
	db.quitLock.Lock()
	defer db.quitLock.Unlock()

	if db.quitChan != nil {
		errc := make(chan error)
		db.quitChan <- errc
		if err := <-errc; err != nil {
			log.Error("Metrics collection failed", "database", db.fn, "err", err)
		}
		db.quitChan = nil
	}

	if err := db.db.Close(); err != nil {
		log.Error("Failed to close database", "database", db.fn, "err", err)
		return
	}
	log.Debug("Database closed", "database", db.fn)
}

func (db *LevelDBDatabase) LDB() *leveldb.DB {
	return db.db
}

// Meter configures the database metrics collectors and starts the compaction stats collector
func (db *LevelDBDatabase) Meter(refresh time.Duration) {
	// Short circuit metering if the metrics system is disabled
	if !metrics.Enabled {
		return
	}
	// Initialize all the metrics collector at the requested prefix
	db.getTimer = metrics.NewTimer(metrics.LevelDb_get_timerName)
	db.putTimer = metrics.NewTimer(metrics.LevelDb_put_timerName)
	db.delTimer = metrics.NewTimer(metrics.LevelDb_del_timerName)
	db.missMeter = metrics.NewMeter(metrics.LevelDb_miss_meterName)
	db.readMeter = metrics.NewMeter(metrics.LevelDb_read_meterName)
	db.writeMeter = metrics.NewMeter(metrics.LevelDb_write_meterName)
	db.compTimeMeter = metrics.NewMeter(metrics.LevelDb_compTime_meteName)
	db.compReadMeter = metrics.NewMeter(metrics.LevelDb_compRead_meterName)
	db.compWriteMeter = metrics.NewMeter(metrics.LevelDb_compWrite_meterName)
	// Create a quit channel for the periodic collector and run it
	db.quitLock.Lock()
	db.quitChan = make(chan chan error)
	db.quitLock.Unlock()

	go db.meter(refresh)
}

// meter periodically retrieves internal leveldb counters and reports them to
// the metrics subsystem.
//
// This is how a stats table look like (currently):
//   Compactions
//    Level |   Tables   |    Size(MB)   |    Time(sec)  |    Read(MB)   |   Write(MB)
//   -------+------------+---------------+---------------+---------------+---------------
//      0   |          0 |       0.00000 |       1.27969 |       0.00000 |      12.31098
//      1   |         85 |     109.27913 |      28.09293 |     213.92493 |     214.26294
//
func (db *LevelDBDatabase) meter(refresh time.Duration) {
	// Create the counters to store current and previous values
	counters := make([][]float64, 2)
	for i := 0; i < 2; i++ {
		counters[i] = make([]float64, 3)
	}
	var errc chan error
	// Iterate ad infinitum and collect the stats
	for i := 1; errc == nil; i++ {
		if err := db.collectCompaction(counters[i%2]); err != nil {
			log.Error("Failed to read database stats", "database", db.fn, "err", err)
		} else {
			db.compTimeMeter.Mark(int64((counters[i%2][0] - counters[(i-1)%2][0]) * 1000 * 1000 * 1000))
			db.compReadMeter.Mark(int64((counters[i%2][1] - counters[(i-1)%2][1]) * 1024 * 1024))
			db.compWriteMeter.Mark(int64((counters[i%2][2] - counters[(i-1)%2][2]) * 1024 * 1024))
		}
		// Sleep a bit, then repeat the stats collection
		select {
		case errc = <-db.quitChan:
			// Quit requesting, stop hammering the database
		case <-time.After(refresh):
			// Timeout, gather a new set of stats
		}
	}
	errc <- nil
}

// collectCompaction sums the time, read and write columns of the compaction table into counter
func (db *LevelDBDatabase) collectCompaction(counter []float64) error {
	stats, err := db.db.GetProperty("leveldb.stats")
	if err != nil {
		return err
	}
	// Find the compaction table, skip the header
	lines := strings.Split(stats, "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[0]) != "Compactions" {
		lines = lines[1:]
	}
	if len(lines) <= 3 {
		return fmt.Errorf("compaction table not found")
	}
	lines = lines[3:]

	for j := range counter {
		counter[j] = 0
	}
	for _, line := range lines {
		parts := strings.Split(line, "|")
		if len(parts) != 6 {
			break
		}
		for idx, value := range parts[3:] {
			parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
			if err != nil {
				return fmt.Errorf("compaction entry parsing failed: %v", err)
			}
			counter[idx] += parsed
		}
	}
	return nil
}

func (db *LevelDBDatabase) NewBatch() Batch {
	return &ldbBatch{db: db, b: new(leveldb.Batch)}
}

// Batch is a write-only database that commits changes to its host database
// when Write is called. Batch cannot be used concurrently.
type Batch interface {
	DatabasePutter
	DatabaseDeleter
	ValueSize() int // amount of data in the batch
	Write() error
	// Reset resets the batch for reuse
	Reset()
}

type ldbBatch struct {
	db   *LevelDBDatabase
	b    *leveldb.Batch
	size int
}

func (b *ldbBatch) Put(key, value []byte) error {
	b.b.Put(key, value)
	b.size += len(value)
	return nil
}

func (b *ldbBatch) Delete(key []byte) error {
	b.b.Delete(key)
	b.size++
	return nil
}

func (b *ldbBatch) Write() error {
	if b.db.writeMeter != nil {
		b.db.writeMeter.Mark(int64(b.size))
	}
	return b.db.db.Write(b.b, nil)
}

func (b *ldbBatch) ValueSize() int {
	return b.size
}

func (b *ldbBatch) Reset() {
	b.b.Reset()
	b.size = 0
}
