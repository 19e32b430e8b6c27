package services

import (
	"context"
	"time"

	"github.com/avelin/formatrack/internal/app/auth"
	"github.com/avelin/formatrack/internal/app/models"
	"github.com/avelin/formatrack/internal/app/models/dto"
	"github.com/avelin/formatrack/internal/app/repositories"
	"github.com/avelin/formatrack/internal/pkg/apperrors"
	"github.com/avelin/formatrack/internal/pkg/dberrors"
	"github.com/avelin/formatrack/internal/pkg/helpers"
)

// ScheduleService manages rooms, scheduled courses and trainer availability
type ScheduleService struct {
	rooms          *repositories.RoomRepository
	courses        *repositories.CourseRepository
	availabilities *repositories.AvailabilityRepository
	formations     *repositories.FormationRepository
	users          *repositories.UserRepository
}

// NewScheduleService creates a new ScheduleService
func NewScheduleService(
	rooms *repositories.RoomRepository,
	courses *repositories.CourseRepository,
	availabilities *repositories.AvailabilityRepository,
	formations *repositories.FormationRepository,
	users *repositories.UserRepository,
) *ScheduleService {
	return &ScheduleService{
		rooms:          rooms,
		courses:        courses,
		availabilities: availabilities,
		formations:     formations,
		users:          users,
	}
}

// GetRooms returns every room
func (s *ScheduleService) GetRooms(ctx context.Context) ([]models.Room, error) {
	return s.rooms.GetAll(ctx)
}

// GetRoom returns one room
func (s *ScheduleService) GetRoom(ctx context.Context, id int64) (*models.Room, error) {
	return s.rooms.GetByID(ctx, id)
}

// CreateRoom creates a room
func (s *ScheduleService) CreateRoom(ctx context.Context, req dto.CreateRoomRequest) (*models.Room, error) {
	room := &models.Room{
		Name:      req.Name,
		Capacity:  req.Capacity,
		Equipment: req.Equipment,
		Building:  req.Building,
		Floor:     req.Floor,
	}

	id, err := s.rooms.Create(ctx, room)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "uq_rooms_name") {
			return nil, apperrors.NewConflictError("a room with this name already exists")
		}
		return nil, err
	}
	return s.rooms.GetByID(ctx, id)
}

// UpdateRoom edits a room
func (s *ScheduleService) UpdateRoom(ctx context.Context, id int64, req dto.UpdateRoomRequest) (*models.Room, error) {
	room, err := s.rooms.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	room.Name = req.Name
	room.Capacity = req.Capacity
	room.Equipment = req.Equipment
	room.Building = req.Building
	room.Floor = req.Floor

	if err := s.rooms.Update(ctx, room); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "uq_rooms_name") {
			return nil, apperrors.NewConflictError("a room with this name already exists")
		}
		return nil, err
	}
	return s.rooms.GetByID(ctx, id)
}

// DeleteRoom removes a room
func (s *ScheduleService) DeleteRoom(ctx context.Context, id int64) error {
	return s.rooms.Delete(ctx, id)
}

// GetCourses lists courses. Trainers only ever see their own; admins see
// everything and may filter by trainer.
func (s *ScheduleService) GetCourses(ctx context.Context, actor auth.Actor, filter dto.CourseFilter, page, pageSize int) ([]models.Course, int64, error) {
	if actor.Role == models.RoleTrainer {
		filter.TrainerID = &actor.TrainerID
	}
	return s.courses.GetAll(ctx, filter, page, pageSize)
}

// GetCourse returns one course
func (s *ScheduleService) GetCourse(ctx context.Context, actor auth.Actor, id int64) (*models.Course, error) {
	course, err := s.courses.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.Role == models.RoleTrainer && course.TrainerID != actor.TrainerID {
		return nil, apperrors.ErrCourseNotFound
	}
	return course, nil
}

// CreateCourse schedules a new course session. Trainers schedule for
// themselves; admins name the trainer in the request.
func (s *ScheduleService) CreateCourse(ctx context.Context, actor auth.Actor, req dto.CreateCourseRequest) (*models.Course, error) {
	trainerID := req.TrainerID
	if actor.Role == models.RoleTrainer {
		trainerID = actor.TrainerID
	}
	if trainerID <= 0 {
		return nil, apperrors.NewValidationError("trainerId is required")
	}

	date, startTime, endTime, err := parseCourseSlot(req.Date, req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	if _, err := s.formations.GetByID(ctx, req.FormationID); err != nil {
		return nil, err
	}
	if _, err := s.users.GetTrainerByID(ctx, trainerID); err != nil {
		return nil, err
	}
	if req.RoomID != nil {
		if _, err := s.rooms.GetByID(ctx, *req.RoomID); err != nil {
			return nil, err
		}
	}

	if err := s.checkSlotConflicts(ctx, trainerID, req.RoomID, date, startTime, 0); err != nil {
		return nil, err
	}

	course := &models.Course{
		FormationID:       req.FormationID,
		TrainerID:         trainerID,
		RoomID:            req.RoomID,
		Title:             req.Title,
		Description:       req.Description,
		Date:              date,
		StartTime:         startTime,
		EndTime:           endTime,
		Objectives:        req.Objectives,
		RequiredMaterials: req.RequiredMaterials,
		Notes:             req.Notes,
	}

	id, err := s.courses.Create(ctx, course)
	if err != nil {
		return nil, mapCourseSlotConstraint(err)
	}
	return s.courses.GetByID(ctx, id)
}

// UpdateCourse reschedules or edits a course. Slot rules are re-checked
// excluding the course's own booking; the trainer cannot be reassigned.
func (s *ScheduleService) UpdateCourse(ctx context.Context, actor auth.Actor, id int64, req dto.UpdateCourseRequest) (*models.Course, error) {
	course, err := s.courses.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanManageTrainerResource(course.TrainerID) {
		return nil, apperrors.ErrPermissionDenied
	}

	date, startTime, endTime, err := parseCourseSlot(req.Date, req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	if req.FormationID != course.FormationID {
		if _, err := s.formations.GetByID(ctx, req.FormationID); err != nil {
			return nil, err
		}
	}
	if req.RoomID != nil {
		if _, err := s.rooms.GetByID(ctx, *req.RoomID); err != nil {
			return nil, err
		}
	}

	if err := s.checkSlotConflicts(ctx, course.TrainerID, req.RoomID, date, startTime, id); err != nil {
		return nil, err
	}

	course.FormationID = req.FormationID
	course.RoomID = req.RoomID
	course.Title = req.Title
	course.Description = req.Description
	course.Date = date
	course.StartTime = startTime
	course.EndTime = endTime
	course.Objectives = req.Objectives
	course.RequiredMaterials = req.RequiredMaterials
	course.Notes = req.Notes

	if err := s.courses.Update(ctx, course); err != nil {
		return nil, mapCourseSlotConstraint(err)
	}
	return s.courses.GetByID(ctx, id)
}

// DeleteCourse removes a course
func (s *ScheduleService) DeleteCourse(ctx context.Context, actor auth.Actor, id int64) error {
	course, err := s.courses.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !actor.CanManageTrainerResource(course.TrainerID) {
		return apperrors.ErrPermissionDenied
	}
	return s.courses.Delete(ctx, id)
}

// parseCourseSlot validates the date and time strings and enforces that the
// session ends after it starts. Times come back in canonical HH:MM form.
func parseCourseSlot(dateStr, startStr, endStr string) (time.Time, string, string, error) {
	date, err := time.Parse(helpers.DateLayout, dateStr)
	if err != nil {
		return time.Time{}, "", "", apperrors.NewValidationError("date must be formatted as YYYY-MM-DD")
	}

	start, err := time.Parse(helpers.TimeLayout, startStr)
	if err != nil {
		return time.Time{}, "", "", apperrors.NewValidationError("startTime must be formatted as HH:MM")
	}
	end, err := time.Parse(helpers.TimeLayout, endStr)
	if err != nil {
		return time.Time{}, "", "", apperrors.NewValidationError("endTime must be formatted as HH:MM")
	}

	if !end.After(start) {
		return time.Time{}, "", "", apperrors.ErrInvalidTimeRange
	}

	return date, start.Format(helpers.TimeLayout), end.Format(helpers.TimeLayout), nil
}

// checkSlotConflicts applies the booking rules: no other course may occupy
// the same room or the same trainer at an identical (date, start) slot.
// Courses without a room skip the room rule entirely.
func (s *ScheduleService) checkSlotConflicts(ctx context.Context, trainerID int64, roomID *int64, date time.Time, startTime string, excludeCourseID int64) error {
	if roomID != nil {
		taken, err := s.courses.RoomSlotTaken(ctx, *roomID, date, startTime, excludeCourseID)
		if err != nil {
			return err
		}
		if taken {
			return apperrors.ErrRoomSlotTaken
		}
	}

	taken, err := s.courses.TrainerSlotTaken(ctx, trainerID, date, startTime, excludeCourseID)
	if err != nil {
		return err
	}
	if taken {
		return apperrors.ErrTrainerSlotTaken
	}
	return nil
}

// mapCourseSlotConstraint converts the unique constraint violations behind
// the booking rules into their conflict errors, so a write racing past the
// pre-checks still answers 409
func mapCourseSlotConstraint(err error) error {
	if dberrors.IsDuplicateConstraintError(err, "uq_courses_room_slot") {
		return apperrors.ErrRoomSlotTaken
	}
	if dberrors.IsDuplicateConstraintError(err, "uq_courses_trainer_slot") {
		return apperrors.ErrTrainerSlotTaken
	}
	return err
}

// GetAvailabilities lists the trainer's windows that have not yet ended
func (s *ScheduleService) GetAvailabilities(ctx context.Context, actor auth.Actor, trainerID int64) ([]models.Availability, error) {
	if actor.Role == models.RoleTrainer {
		trainerID = actor.TrainerID
	}
	if trainerID <= 0 {
		return nil, apperrors.NewValidationError("trainerId is required")
	}
	return s.availabilities.GetCurrentByTrainer(ctx, trainerID, helpers.StartOfDay(time.Now()))
}

// CreateAvailability declares a new availability window for the calling
// trainer. Windows are advisory and never block course scheduling.
func (s *ScheduleService) CreateAvailability(ctx context.Context, actor auth.Actor, req dto.CreateAvailabilityRequest) (*models.Availability, error) {
	if actor.Role != models.RoleTrainer {
		return nil, apperrors.ErrPermissionDenied
	}

	startsAt, err := time.Parse(time.RFC3339, req.StartsAt)
	if err != nil {
		return nil, apperrors.NewValidationError("startsAt must be an RFC 3339 timestamp")
	}
	endsAt, err := time.Parse(time.RFC3339, req.EndsAt)
	if err != nil {
		return nil, apperrors.NewValidationError("endsAt must be an RFC 3339 timestamp")
	}
	if !endsAt.After(startsAt) {
		return nil, apperrors.ErrInvalidTimeRange
	}

	availability := &models.Availability{
		TrainerID: actor.TrainerID,
		StartsAt:  startsAt,
		EndsAt:    endsAt,
		Kind:      models.AvailabilityKind(req.Kind),
		Notes:     req.Notes,
	}

	id, err := s.availabilities.Create(ctx, availability)
	if err != nil {
		return nil, err
	}
	return s.availabilities.GetByID(ctx, id)
}

// DeleteAvailability removes one of the trainer's windows
func (s *ScheduleService) DeleteAvailability(ctx context.Context, actor auth.Actor, id int64) error {
	availability, err := s.availabilities.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !actor.CanManageTrainerResource(availability.TrainerID) {
		return apperrors.ErrPermissionDenied
	}
	return s.availabilities.Delete(ctx, id)
}
