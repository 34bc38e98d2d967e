package dorothea

import (
	"fmt"

	"github.com/jmbenlloch/go-hdf5"
)

// EventDataHDF5 is one /Run/events row. Field names match the HDF5 column
// names, the library converts compound types by member name.
type EventDataHDF5 struct {
	evt_number int32
	timestamp  uint64
}

// RunInfoHDF5 is the single /Run/runInfo row.
type RunInfoHDF5 struct {
	run_number int32
}

func openFile(fname string) *hdf5.File {
	f, err := hdf5.CreateFile(fname, hdf5.F_ACC_TRUNC)
	if err != nil {
		panic(&ErrOpenFile{Filename: fname, Err: err})
	}
	return f
}

func openFileReadOnly(fname string) (*hdf5.File, error) {
	f, err := hdf5.OpenFile(fname, hdf5.F_ACC_RDONLY)
	if err != nil {
		return nil, &ErrOpenFile{Filename: fname, Err: err}
	}
	return f, nil
}

func createGroup(file *hdf5.File, groupName string) *hdf5.Group {
	g, err := file.CreateGroup(groupName)
	if err != nil {
		panic(&ErrCreateGroup{GroupName: groupName, Err: err})
	}
	return g
}

func createTable(group *hdf5.Group, name string, datatype interface{}) *hdf5.Dataset {
	dims := []uint{0}
	unlimitedDims := -1 // H5S_UNLIMITED is -1L
	maxDims := []uint{uint(unlimitedDims)}
	file_space, err := hdf5.CreateSimpleDataspace(dims, maxDims)
	if err != nil {
		panic(err)
	}

	// create property list
	plist, err := hdf5.NewPropList(hdf5.P_DATASET_CREATE)
	if err != nil {
		panic(err)
	}

	chunks := []uint{32768}
	plist.SetChunk(chunks)

	// Set compression level
	compression := configuration.Compression
	if compression.UseBlosc {
		hdf5.ConfigureBloscFilter(plist, compression.Algorithm, compression.Level, compression.Shuffle)
	} else {
		plist.SetDeflate(compression.Level)
	}

	// create the memory data type
	dtype, err := hdf5.NewDatatypeFromValue(datatype)
	if err != nil {
		panic(err)
	}

	// create the dataset
	dset, err := group.CreateDatasetWith(name, dtype, file_space, plist)
	if err != nil {
		panic(&ErrCreateTable{TableName: name, Err: err})
	}
	return dset
}

func writeEntryToTable[T any](dataset *hdf5.Dataset, data T, evtCounter int) {
	array := []T{data}
	writeArrayToTable(dataset, &array, evtCounter)
}

func writeArrayToTable[T any](dataset *hdf5.Dataset, data *[]T, evtCounter int) {
	length := uint(len(*data))
	dims := []uint{length}
	dataspace, err := hdf5.CreateSimpleDataspace(dims, nil)
	if err != nil {
		panic(err)
	}

	// extend
	rowsInFile := uint(evtCounter)
	newsize := []uint{rowsInFile + length}
	dataset.Resize(newsize)
	filespace := dataset.Space()

	start := []uint{rowsInFile}
	count := []uint{length}
	filespace.SelectHyperslab(start, nil, count, nil)

	err = dataset.WriteSubset(data, dataspace, filespace)
	if err != nil {
		panic(err)
	}

	dataspace.Close()
	filespace.Close()
}

// readTable reads a whole fixed-layout table into rows of type T. Member
// names of T must match the file column names. An absent dataset comes
// back as ErrMissingTable; extent and read failures on a present dataset
// do not.
func readTable[T any](file *hdf5.File, path string) ([]T, error) {
	dataset, err := file.OpenDataset(path)
	if err != nil {
		return nil, &ErrMissingTable{TableName: path, Err: err}
	}
	defer dataset.Close()

	space := dataset.Space()
	defer space.Close()
	dims, _, err := space.SimpleExtentDims()
	if err != nil {
		return nil, fmt.Errorf("error reading extent of table %q: %w", path, err)
	}
	if len(dims) == 0 || dims[0] == 0 {
		return nil, nil
	}

	rows := make([]T, dims[0])
	if err := dataset.Read(&rows); err != nil {
		return nil, fmt.Errorf("error reading table %q: %w", path, err)
	}
	return rows, nil
}
