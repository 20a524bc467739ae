package musicservice

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	musicdomain "github.com/Black-And-White-Club/music-backend/app/modules/music/domain"
	musicmetrics "github.com/Black-And-White-Club/music-backend/app/modules/music/infrastructure/metrics"
	musicdb "github.com/Black-And-White-Club/music-backend/app/modules/music/infrastructure/repositories"
	"github.com/Black-And-White-Club/music-backend/pkg/patch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

func newTestService(f *fakeRepos) *MusicService {
	return NewMusicService(
		f.bands,
		f.musicians,
		f.memberships,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		musicmetrics.NewNoop(),
		nil,
		nil,
	)
}

func intPtr(v int) *int       { return &v }
func int64Ptr(v int64) *int64 { return &v }

func TestCreateBand(t *testing.T) {
	tests := []struct {
		name      string
		in        BandCreate
		setup     func(*fakeRepos)
		wantErrIs error
		wantTrace []string
	}{
		{
			name: "happy path",
			in:   BandCreate{Name: "The Beatles", Genre: musicdomain.GenreRock, FormedYear: intPtr(1960)},
			setup: func(f *fakeRepos) {
				f.bands.CreateFunc = func(ctx context.Context, db bun.IDB, band *musicdb.Band) error {
					band.ID = 1
					return nil
				}
			},
			wantTrace: []string{"Bands.GetByName", "Bands.Create"},
		},
		{
			name: "name already taken",
			in:   BandCreate{Name: "The Beatles", Genre: musicdomain.GenreRock},
			setup: func(f *fakeRepos) {
				f.bands.GetByNameFunc = func(ctx context.Context, db bun.IDB, name string) (*musicdb.Band, error) {
					return &musicdb.Band{ID: 7, Name: name}, nil
				}
			},
			wantErrIs: ErrConflict,
			wantTrace: []string{"Bands.GetByName"},
		},
		{
			name: "storage unique violation wins over pre-check",
			in:   BandCreate{Name: "Racer", Genre: musicdomain.GenreRock},
			setup: func(f *fakeRepos) {
				f.bands.CreateFunc = func(ctx context.Context, db bun.IDB, band *musicdb.Band) error {
					return errors.Join(musicdb.ErrUniqueViolation, errors.New("duplicate key"))
				}
			},
			wantErrIs: ErrConflict,
			wantTrace: []string{"Bands.GetByName", "Bands.Create"},
		},
		{
			name:      "blank name",
			in:        BandCreate{Name: "   ", Genre: musicdomain.GenreRock},
			wantErrIs: ErrInvalidArgument,
			wantTrace: []string{},
		},
		{
			name:      "unknown genre",
			in:        BandCreate{Name: "X", Genre: musicdomain.Genre("POLKA")},
			wantErrIs: ErrInvalidArgument,
			wantTrace: []string{},
		},
		{
			name:      "formed year out of range",
			in:        BandCreate{Name: "X", Genre: musicdomain.GenreRock, FormedYear: intPtr(99)},
			wantErrIs: ErrInvalidArgument,
			wantTrace: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFakeRepos()
			if tt.setup != nil {
				tt.setup(f)
			}
			svc := newTestService(f)

			band, err := svc.CreateBand(context.Background(), tt.in)

			assert.Equal(t, tt.wantTrace, f.trace.Trace())
			if tt.wantErrIs != nil {
				assert.ErrorIs(t, err, tt.wantErrIs)
				assert.Nil(t, band)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(1), band.ID)
			assert.Equal(t, tt.in.Name, band.Name)
			assert.NotNil(t, band.Memberships)
			assert.Empty(t, band.Memberships)
			assert.Nil(t, band.UpdatedAt)
		})
	}
}

func TestGetBand(t *testing.T) {
	tests := []struct {
		name      string
		setup     func(*fakeRepos)
		wantErrIs error
		wantInfra bool
	}{
		{
			name: "found",
			setup: func(f *fakeRepos) {
				f.bands.GetByIDFunc = func(ctx context.Context, db bun.IDB, id int64) (*musicdb.Band, error) {
					return &musicdb.Band{ID: id, Name: "Found"}, nil
				}
			},
		},
		{
			name:      "not found",
			wantErrIs: ErrNotFound,
		},
		{
			name: "database error propagates",
			setup: func(f *fakeRepos) {
				f.bands.GetByIDFunc = func(ctx context.Context, db bun.IDB, id int64) (*musicdb.Band, error) {
					return nil, errors.New("connection refused")
				}
			},
			wantInfra: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFakeRepos()
			if tt.setup != nil {
				tt.setup(f)
			}
			svc := newTestService(f)

			band, err := svc.GetBand(context.Background(), 3)
			switch {
			case tt.wantErrIs != nil:
				assert.ErrorIs(t, err, tt.wantErrIs)
				var nf *NotFoundError
				require.ErrorAs(t, err, &nf)
				assert.Equal(t, "Band with ID 3 not found", nf.Error())
			case tt.wantInfra:
				require.Error(t, err)
				assert.NotErrorIs(t, err, ErrNotFound)
				assert.Contains(t, err.Error(), "connection refused")
			default:
				require.NoError(t, err)
				assert.Equal(t, "Found", band.Name)
			}
		})
	}
}

func TestListBands_Pagination(t *testing.T) {
	rock := musicdomain.GenreRock
	polka := musicdomain.Genre("POLKA")

	tests := []struct {
		name       string
		params     ListBandsParams
		wantErrIs  error
		wantOffset int
		wantLimit  int
	}{
		{name: "defaults", params: ListBandsParams{}, wantOffset: 0, wantLimit: DefaultLimit},
		{name: "explicit", params: ListBandsParams{Page: Page{Skip: 5, Limit: 10}, Genre: &rock}, wantOffset: 5, wantLimit: 10},
		{name: "max limit", params: ListBandsParams{Page: Page{Limit: MaxLimit}}, wantLimit: MaxLimit},
		{name: "negative skip", params: ListBandsParams{Page: Page{Skip: -1}}, wantErrIs: ErrInvalidArgument},
		{name: "limit too large", params: ListBandsParams{Page: Page{Limit: MaxLimit + 1}}, wantErrIs: ErrInvalidArgument},
		{name: "negative limit", params: ListBandsParams{Page: Page{Limit: -5}}, wantErrIs: ErrInvalidArgument},
		{name: "unknown genre", params: ListBandsParams{Genre: &polka}, wantErrIs: ErrInvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFakeRepos()
			var gotOffset, gotLimit int
			var gotGenre *musicdomain.Genre
			f.bands.ListFunc = func(ctx context.Context, db bun.IDB, genre *musicdomain.Genre, offset, limit int) ([]musicdb.Band, int, error) {
				gotOffset, gotLimit, gotGenre = offset, limit, genre
				return []musicdb.Band{{ID: 1}}, 42, nil
			}
			svc := newTestService(f)

			list, err := svc.ListBands(context.Background(), tt.params)
			if tt.wantErrIs != nil {
				assert.ErrorIs(t, err, tt.wantErrIs)
				assert.Empty(t, f.trace.Trace())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 42, list.Total)
			assert.Len(t, list.Items, 1)
			assert.Equal(t, tt.wantOffset, gotOffset)
			assert.Equal(t, tt.wantLimit, gotLimit)
			assert.Equal(t, tt.params.Genre, gotGenre)
		})
	}
}

func TestUpdateBand(t *testing.T) {
	original := func() *musicdb.Band {
		return &musicdb.Band{ID: 1, Name: "Original", Genre: musicdomain.GenreRock, FormedYear: intPtr(1970)}
	}

	tests := []struct {
		name        string
		update      musicdb.BandUpdate
		setup       func(*fakeRepos)
		wantErrIs   error
		wantColumns []string
		wantTrace   []string
	}{
		{
			name:        "genre only",
			update:      musicdb.BandUpdate{Genre: patch.Value(musicdomain.GenreJazz)},
			wantColumns: []string{"genre", "updated_at"},
			wantTrace:   []string{"Bands.GetByID", "Bands.Update", "Bands.GetByID"},
		},
		{
			name:        "clear formed year",
			update:      musicdb.BandUpdate{FormedYear: patch.Null[int]()},
			wantColumns: []string{"formed_year", "updated_at"},
			wantTrace:   []string{"Bands.GetByID", "Bands.Update", "Bands.GetByID"},
		},
		{
			name:      "empty update writes nothing",
			update:    musicdb.BandUpdate{},
			wantTrace: []string{"Bands.GetByID"},
		},
		{
			name:   "rename to taken name",
			update: musicdb.BandUpdate{Name: patch.Value("Taken")},
			setup: func(f *fakeRepos) {
				f.bands.GetByNameFunc = func(ctx context.Context, db bun.IDB, name string) (*musicdb.Band, error) {
					return &musicdb.Band{ID: 2, Name: name}, nil
				}
			},
			wantErrIs: ErrConflict,
			wantTrace: []string{"Bands.GetByID", "Bands.GetByName"},
		},
		{
			name:      "null name rejected",
			update:    musicdb.BandUpdate{Name: patch.Null[string]()},
			wantErrIs: ErrInvalidArgument,
			wantTrace: []string{},
		},
		{
			name:   "missing band",
			update: musicdb.BandUpdate{Genre: patch.Value(musicdomain.GenreJazz)},
			setup: func(f *fakeRepos) {
				f.bands.GetByIDFunc = func(ctx context.Context, db bun.IDB, id int64) (*musicdb.Band, error) {
					return nil, musicdb.ErrNotFound
				}
			},
			wantErrIs: ErrNotFound,
			wantTrace: []string{"Bands.GetByID"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFakeRepos()
			stored := original()
			f.bands.GetByIDFunc = func(ctx context.Context, db bun.IDB, id int64) (*musicdb.Band, error) {
				cp := *stored
				return &cp, nil
			}
			var gotColumns []string
			f.bands.UpdateFunc = func(ctx context.Context, db bun.IDB, band *musicdb.Band, columns ...string) error {
				gotColumns = columns
				*stored = *band
				return nil
			}
			if tt.setup != nil {
				tt.setup(f)
			}
			svc := newTestService(f)

			band, err := svc.UpdateBand(context.Background(), 1, tt.update)

			assert.Equal(t, tt.wantTrace, f.trace.Trace())
			if tt.wantErrIs != nil {
				assert.ErrorIs(t, err, tt.wantErrIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantColumns, gotColumns)
			assert.Equal(t, "Original", band.Name)
			if tt.update.IsEmpty() {
				assert.Nil(t, band.UpdatedAt)
			} else {
				assert.NotNil(t, band.UpdatedAt)
			}
		})
	}
}

func TestDeleteBand_CascadesBeforeOwner(t *testing.T) {
	f := newFakeRepos()
	f.bands.ExistsFunc = func(ctx context.Context, db bun.IDB, id int64) (bool, error) { return true, nil }
	var purged int64
	f.memberships.DeleteByBandFunc = func(ctx context.Context, db bun.IDB, bandID int64) (int64, error) {
		purged = bandID
		return 2, nil
	}
	svc := newTestService(f)

	require.NoError(t, svc.DeleteBand(context.Background(), 9))
	assert.Equal(t, int64(9), purged)
	assert.Equal(t, []string{"Bands.Exists", "Memberships.DeleteByBand", "Bands.Delete"}, f.trace.Trace())
}

func TestDeleteBand_NotFoundSkipsCascade(t *testing.T) {
	f := newFakeRepos()
	svc := newTestService(f)

	err := svc.DeleteBand(context.Background(), 9)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, []string{"Bands.Exists"}, f.trace.Trace())
}

func TestDeleteBand_PurgeFailurePropagates(t *testing.T) {
	f := newFakeRepos()
	f.bands.ExistsFunc = func(ctx context.Context, db bun.IDB, id int64) (bool, error) { return true, nil }
	f.memberships.DeleteByBandFunc = func(ctx context.Context, db bun.IDB, bandID int64) (int64, error) {
		return 0, errors.New("disk full")
	}
	svc := newTestService(f)

	err := svc.DeleteBand(context.Background(), 9)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.NotContains(t, f.trace.Trace(), "Bands.Delete")
}

func TestDeleteMusician_CascadesBeforeOwner(t *testing.T) {
	f := newFakeRepos()
	f.musicians.ExistsFunc = func(ctx context.Context, db bun.IDB, id int64) (bool, error) { return true, nil }
	svc := newTestService(f)

	require.NoError(t, svc.DeleteMusician(context.Background(), 4))
	assert.Equal(t, []string{"Musicians.Exists", "Memberships.DeleteByMusician", "Musicians.Delete"}, f.trace.Trace())
}

func TestListMusicians_BandFilter(t *testing.T) {
	t.Run("empty band short-circuits", func(t *testing.T) {
		f := newFakeRepos()
		f.memberships.MusicianIDsByBandFunc = func(ctx context.Context, db bun.IDB, bandID int64) ([]int64, error) {
			return []int64{}, nil
		}
		svc := newTestService(f)

		list, err := svc.ListMusicians(context.Background(), ListMusiciansParams{BandID: int64Ptr(5)})
		require.NoError(t, err)
		assert.Empty(t, list.Items)
		assert.Zero(t, list.Total)
		assert.Equal(t, []string{"Memberships.MusicianIDsByBand"}, f.trace.Trace())
	})

	t.Run("resolves ids then filters", func(t *testing.T) {
		f := newFakeRepos()
		f.memberships.MusicianIDsByBandFunc = func(ctx context.Context, db bun.IDB, bandID int64) ([]int64, error) {
			return []int64{1, 3}, nil
		}
		var gotIDs []int64
		f.musicians.ListByIDsFunc = func(ctx context.Context, db bun.IDB, ids []int64, offset, limit int) ([]musicdb.Musician, int, error) {
			gotIDs = ids
			return []musicdb.Musician{{ID: 1}, {ID: 3}}, 2, nil
		}
		svc := newTestService(f)

		list, err := svc.ListMusicians(context.Background(), ListMusiciansParams{BandID: int64Ptr(5)})
		require.NoError(t, err)
		assert.Equal(t, []int64{1, 3}, gotIDs)
		assert.Equal(t, 2, list.Total)
		assert.Equal(t, []string{"Memberships.MusicianIDsByBand", "Musicians.ListByIDs"}, f.trace.Trace())
	})

	t.Run("no filter lists all", func(t *testing.T) {
		f := newFakeRepos()
		svc := newTestService(f)

		_, err := svc.ListMusicians(context.Background(), ListMusiciansParams{})
		require.NoError(t, err)
		assert.Equal(t, []string{"Musicians.List"}, f.trace.Trace())
	})
}

func TestCreateMembership(t *testing.T) {
	valid := MembershipCreate{BandID: 1, MusicianID: 2, Instrument: musicdomain.InstrumentGuitar}

	tests := []struct {
		name       string
		in         MembershipCreate
		setup      func(*fakeRepos)
		wantErrIs  error
		wantEntity string
		wantTrace  []string
	}{
		{
			name: "happy path",
			in:   valid,
			setup: func(f *fakeRepos) {
				f.bands.ExistsFunc = func(ctx context.Context, db bun.IDB, id int64) (bool, error) { return true, nil }
				f.musicians.ExistsFunc = func(ctx context.Context, db bun.IDB, id int64) (bool, error) { return true, nil }
				f.memberships.CreateFunc = func(ctx context.Context, db bun.IDB, m *musicdb.Membership) error {
					m.ID = 10
					return nil
				}
				f.memberships.GetByIDFunc = func(ctx context.Context, db bun.IDB, id int64) (*musicdb.Membership, error) {
					return &musicdb.Membership{ID: id, BandID: 1, MusicianID: 2, Instrument: musicdomain.InstrumentGuitar,
						Musician: &musicdb.Musician{ID: 2, Name: "John Lennon"}}, nil
				}
			},
			wantTrace: []string{"Bands.Exists", "Musicians.Exists", "Memberships.Create", "Memberships.GetByID"},
		},
		{
			name:       "missing band",
			in:         valid,
			wantErrIs:  ErrNotFound,
			wantEntity: "Band",
			wantTrace:  []string{"Bands.Exists"},
		},
		{
			name: "missing musician",
			in:   valid,
			setup: func(f *fakeRepos) {
				f.bands.ExistsFunc = func(ctx context.Context, db bun.IDB, id int64) (bool, error) { return true, nil }
			},
			wantErrIs:  ErrNotFound,
			wantEntity: "Musician",
			wantTrace:  []string{"Bands.Exists", "Musicians.Exists"},
		},
		{
			name: "duplicate pair",
			in:   valid,
			setup: func(f *fakeRepos) {
				f.bands.ExistsFunc = func(ctx context.Context, db bun.IDB, id int64) (bool, error) { return true, nil }
				f.musicians.ExistsFunc = func(ctx context.Context, db bun.IDB, id int64) (bool, error) { return true, nil }
				f.memberships.CreateFunc = func(ctx context.Context, db bun.IDB, m *musicdb.Membership) error {
					return musicdb.ErrUniqueViolation
				}
			},
			wantErrIs: ErrConflict,
			wantTrace: []string{"Bands.Exists", "Musicians.Exists", "Memberships.Create"},
		},
		{
			name:      "unknown instrument",
			in:        MembershipCreate{BandID: 1, MusicianID: 2, Instrument: "KAZOO"},
			wantErrIs: ErrInvalidArgument,
			wantTrace: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFakeRepos()
			if tt.setup != nil {
				tt.setup(f)
			}
			svc := newTestService(f)

			m, err := svc.CreateMembership(context.Background(), tt.in)

			assert.Equal(t, tt.wantTrace, f.trace.Trace())
			if tt.wantErrIs != nil {
				assert.ErrorIs(t, err, tt.wantErrIs)
				if tt.wantEntity != "" {
					var nf *NotFoundError
					require.ErrorAs(t, err, &nf)
					assert.Equal(t, tt.wantEntity, nf.Entity)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(10), m.ID)
			require.NotNil(t, m.Musician)
			assert.Equal(t, "John Lennon", m.Musician.Name)
		})
	}
}

func TestUpdateMembership_InstrumentOnly(t *testing.T) {
	f := newFakeRepos()
	f.memberships.GetByIDFunc = func(ctx context.Context, db bun.IDB, id int64) (*musicdb.Membership, error) {
		return &musicdb.Membership{ID: id, BandID: 1, MusicianID: 2, Instrument: musicdomain.InstrumentGuitar}, nil
	}
	var gotColumns []string
	f.memberships.UpdateFunc = func(ctx context.Context, db bun.IDB, m *musicdb.Membership, columns ...string) error {
		gotColumns = columns
		return nil
	}
	svc := newTestService(f)

	m, err := svc.UpdateMembership(context.Background(), 5, musicdb.MembershipUpdate{Instrument: patch.Value(musicdomain.InstrumentBass)})
	require.NoError(t, err)
	assert.Equal(t, musicdomain.InstrumentBass, m.Instrument)
	assert.Equal(t, []string{"instrument", "updated_at"}, gotColumns)
	assert.NotNil(t, m.UpdatedAt)
}

func TestDeleteMembership_NotFound(t *testing.T) {
	f := newFakeRepos()
	f.memberships.DeleteFunc = func(ctx context.Context, db bun.IDB, m *musicdb.Membership) error {
		return musicdb.ErrNoRowsAffected
	}
	svc := newTestService(f)

	err := svc.DeleteMembership(context.Background(), 5)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestWithTelemetry_RecoversPanic(t *testing.T) {
	f := newFakeRepos()
	f.bands.GetByIDFunc = func(ctx context.Context, db bun.IDB, id int64) (*musicdb.Band, error) {
		panic("boom")
	}
	svc := newTestService(f)

	band, err := svc.GetBand(context.Background(), 1)
	require.Error(t, err)
	assert.Nil(t, band)
	assert.Contains(t, err.Error(), "panic in GetBand")
}
