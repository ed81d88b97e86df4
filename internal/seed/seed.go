// Package seed loads a small demo catalog so a fresh deployment has
// something to schedule against.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/coursesched/internal/app/models/dto"
	"github.com/yigit/coursesched/internal/app/services"
	"github.com/yigit/coursesched/internal/pkg/helpers"
)

type demoCourse struct {
	name     string
	passMark int
	capacity int
}

var demoCourses = []demoCourse{
	{name: "JavaScript", passMark: 75, capacity: 50},
	{name: "Node js", passMark: 70, capacity: 40},
	{name: "Private class", passMark: 60, capacity: 1},
}

// CreateDefaultData creates demo rooms, lecturers, courses and a first
// session per course. It does nothing when rooms already exist.
func CreateDefaultData(ctx context.Context, svc *services.Services, today time.Time, lgr zerolog.Logger) error {
	rooms, err := svc.Rooms.GetAllRooms(ctx)
	if err != nil {
		return fmt.Errorf("checking existing rooms: %w", err)
	}
	if len(rooms) > 0 {
		lgr.Info().Int("rooms", len(rooms)).Msg("Catalog already populated, skipping demo data")
		return nil
	}

	lgr.Info().Msg("Creating demo data (rooms, lecturers, courses)...")

	var roomIDs []string
	for _, number := range []int{1, 2} {
		room, err := svc.Rooms.CreateRoom(ctx, &dto.CreateRoomRequest{Number: number})
		if err != nil {
			return fmt.Errorf("creating room %d: %w", number, err)
		}
		roomIDs = append(roomIDs, room.ID.String())
	}

	var lecturerIDs []string
	for _, p := range []dto.CreatePersonRequest{
		{Name: "Yaki", PhoneNumber: "0541111111", Email: "yaki@gmail.com"},
		{Name: "Chaim", PhoneNumber: "0542222222", Email: "chaim@gmail.com"},
	} {
		p := p
		lecturer, err := svc.Lecturers.CreateLecturer(ctx, &p)
		if err != nil {
			return fmt.Errorf("creating lecturer %s: %w", p.Name, err)
		}
		lecturerIDs = append(lecturerIDs, lecturer.ID.String())
	}

	start := today
	end := today.AddDate(0, 2, 0)
	for i, c := range demoCourses {
		passMark := c.passMark
		course, err := svc.Courses.CreateCourse(ctx, &dto.CreateCourseRequest{
			Name:             c.name,
			StartDate:        helpers.FormatDate(start),
			EndDate:          helpers.FormatDate(end),
			MinimumPassScore: &passMark,
			MaximumStudents:  c.capacity,
		})
		if err != nil {
			return fmt.Errorf("creating course %s: %w", c.name, err)
		}

		// One evening session a week apart per course, alternating rooms and lecturers.
		_, err = svc.Sessions.CreateSession(ctx, &dto.CreateSessionRequest{
			CourseID:   course.ID.String(),
			Date:       helpers.FormatDate(start.AddDate(0, 0, 7*(i+1))),
			StartTime:  "18:00",
			EndTime:    "20:00",
			RoomID:     roomIDs[i%len(roomIDs)],
			LecturerID: lecturerIDs[i%len(lecturerIDs)],
		})
		if err != nil {
			return fmt.Errorf("creating first session of %s: %w", c.name, err)
		}
	}

	lgr.Info().Int("courses", len(demoCourses)).Msg("Demo data created")
	return nil
}
