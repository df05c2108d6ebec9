package ecosystem

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/cynq/cynq-backend/internal/domain"
	"github.com/cynq/cynq-backend/internal/pkg/dbctx"
	"github.com/cynq/cynq-backend/internal/pkg/logger"
)

// CriticalPathRepo persists path trees across three tables. Assembly
// back into the nested shape happens here so services only ever see
// complete trees.
type CriticalPathRepo interface {
	CreateTree(dbc dbctx.Context, path *types.CriticalPath) (*types.CriticalPath, error)
	GetTreeForUser(dbc dbctx.Context, id, userID uuid.UUID) (*types.CriticalPath, error)
	ListTreesByUser(dbc dbctx.Context, userID uuid.UUID) ([]*types.CriticalPath, error)
	Delete(dbc dbctx.Context, id, userID uuid.UUID) (int64, error)

	GetPathForUser(dbc dbctx.Context, id, userID uuid.UUID) (*types.CriticalPath, error)
	GetPhase(dbc dbctx.Context, pathID, phaseID uuid.UUID) (*types.CriticalPathPhase, error)
	GetTask(dbc dbctx.Context, phaseID, taskID uuid.UUID) (*types.CriticalPathTask, error)
	UpdateTaskFields(dbc dbctx.Context, taskID uuid.UUID, updates map[string]interface{}) error
}

type criticalPathRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCriticalPathRepo(db *gorm.DB, log *logger.Logger) CriticalPathRepo {
	return &criticalPathRepo{db: db, log: log.With("repo", "CriticalPathRepo")}
}

func (r *criticalPathRepo) CreateTree(dbc dbctx.Context, path *types.CriticalPath) (*types.CriticalPath, error) {
	if path == nil {
		return nil, fmt.Errorf("missing path")
	}
	txx := dbc.DB(r.db)

	// Rows go in sequentially with no wrapping transaction; on partial
	// failure the caller deletes the path row, which cascades whatever
	// landed.
	phases := path.Phases
	path.Phases = nil
	if err := txx.WithContext(dbc.Ctx).Create(path).Error; err != nil {
		path.Phases = phases
		return nil, err
	}
	path.Phases = phases
	for pi := range phases {
		phases[pi].CriticalPathID = path.ID
		tasks := phases[pi].KeyTasks
		phases[pi].KeyTasks = nil
		if err := txx.WithContext(dbc.Ctx).Create(&phases[pi]).Error; err != nil {
			phases[pi].KeyTasks = tasks
			return nil, err
		}
		for ti := range tasks {
			tasks[ti].PhaseID = phases[pi].ID
			if err := txx.WithContext(dbc.Ctx).Create(&tasks[ti]).Error; err != nil {
				phases[pi].KeyTasks = tasks
				return nil, err
			}
		}
		phases[pi].KeyTasks = tasks
	}
	return path, nil
}

func (r *criticalPathRepo) GetTreeForUser(dbc dbctx.Context, id, userID uuid.UUID) (*types.CriticalPath, error) {
	path, err := r.GetPathForUser(dbc, id, userID)
	if err != nil {
		return nil, err
	}
	if err := r.loadTrees(dbc, []*types.CriticalPath{path}); err != nil {
		return nil, err
	}
	return path, nil
}

func (r *criticalPathRepo) ListTreesByUser(dbc dbctx.Context, userID uuid.UUID) ([]*types.CriticalPath, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("missing user_id")
	}
	txx := dbc.DB(r.db)
	var paths []*types.CriticalPath
	if err := txx.WithContext(dbc.Ctx).
		Model(&types.CriticalPath{}).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&paths).Error; err != nil {
		return nil, err
	}
	if err := r.loadTrees(dbc, paths); err != nil {
		return nil, err
	}
	return paths, nil
}

func (r *criticalPathRepo) loadTrees(dbc dbctx.Context, paths []*types.CriticalPath) error {
	if len(paths) == 0 {
		return nil
	}
	txx := dbc.DB(r.db)

	pathIDs := make([]uuid.UUID, 0, len(paths))
	for _, p := range paths {
		pathIDs = append(pathIDs, p.ID)
	}

	var phases []types.CriticalPathPhase
	if err := txx.WithContext(dbc.Ctx).
		Model(&types.CriticalPathPhase{}).
		Where("critical_path_id IN ?", pathIDs).
		Order("phase_order ASC").
		Find(&phases).Error; err != nil {
		return err
	}

	phaseIDs := make([]uuid.UUID, 0, len(phases))
	for _, ph := range phases {
		phaseIDs = append(phaseIDs, ph.ID)
	}

	var tasks []types.CriticalPathTask
	if len(phaseIDs) > 0 {
		if err := txx.WithContext(dbc.Ctx).
			Model(&types.CriticalPathTask{}).
			Where("phase_id IN ?", phaseIDs).
			Order("task_order ASC").
			Find(&tasks).Error; err != nil {
			return err
		}
	}

	tasksByPhase := make(map[uuid.UUID][]types.CriticalPathTask, len(phases))
	for _, t := range tasks {
		tasksByPhase[t.PhaseID] = append(tasksByPhase[t.PhaseID], t)
	}
	phasesByPath := make(map[uuid.UUID][]types.CriticalPathPhase, len(paths))
	for _, ph := range phases {
		ph.KeyTasks = tasksByPhase[ph.ID]
		if ph.KeyTasks == nil {
			ph.KeyTasks = []types.CriticalPathTask{}
		}
		phasesByPath[ph.CriticalPathID] = append(phasesByPath[ph.CriticalPathID], ph)
	}
	for _, p := range paths {
		p.Phases = phasesByPath[p.ID]
		if p.Phases == nil {
			p.Phases = []types.CriticalPathPhase{}
		}
	}
	return nil
}

func (r *criticalPathRepo) Delete(dbc dbctx.Context, id, userID uuid.UUID) (int64, error) {
	if id == uuid.Nil || userID == uuid.Nil {
		return 0, fmt.Errorf("missing id")
	}
	txx := dbc.DB(r.db)
	// Phase and task rows fall with the path via FK cascade.
	res := txx.WithContext(dbc.Ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&types.CriticalPath{})
	return res.RowsAffected, res.Error
}

func (r *criticalPathRepo) GetPathForUser(dbc dbctx.Context, id, userID uuid.UUID) (*types.CriticalPath, error) {
	if id == uuid.Nil || userID == uuid.Nil {
		return nil, fmt.Errorf("missing id")
	}
	txx := dbc.DB(r.db)
	var out types.CriticalPath
	if err := txx.WithContext(dbc.Ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *criticalPathRepo) GetPhase(dbc dbctx.Context, pathID, phaseID uuid.UUID) (*types.CriticalPathPhase, error) {
	if pathID == uuid.Nil || phaseID == uuid.Nil {
		return nil, fmt.Errorf("missing id")
	}
	txx := dbc.DB(r.db)
	var out types.CriticalPathPhase
	if err := txx.WithContext(dbc.Ctx).
		Where("id = ? AND critical_path_id = ?", phaseID, pathID).
		First(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *criticalPathRepo) GetTask(dbc dbctx.Context, phaseID, taskID uuid.UUID) (*types.CriticalPathTask, error) {
	if phaseID == uuid.Nil || taskID == uuid.Nil {
		return nil, fmt.Errorf("missing id")
	}
	txx := dbc.DB(r.db)
	var out types.CriticalPathTask
	if err := txx.WithContext(dbc.Ctx).
		Where("id = ? AND phase_id = ?", taskID, phaseID).
		First(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *criticalPathRepo) UpdateTaskFields(dbc dbctx.Context, taskID uuid.UUID, updates map[string]interface{}) error {
	if taskID == uuid.Nil {
		return fmt.Errorf("missing task_id")
	}
	if len(updates) == 0 {
		return nil
	}
	txx := dbc.DB(r.db)
	return txx.WithContext(dbc.Ctx).
		Model(&types.CriticalPathTask{}).
		Where("id = ?", taskID).
		Updates(updates).Error
}
