package server

// pageHTML is the chart page. It fetches precomputed trajectory points
// from /api/trajectory and draws a Chart.js scatter plot: historical days
// as faint dots, today as a connected line. Tooltip treatment branches on
// each point's kind.
const pageHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width,initial-scale=1">
<title>togglpace</title>
<script src="https://cdn.jsdelivr.net/npm/chart.js@4"></script>
<style>
*{box-sizing:border-box;margin:0;padding:0}
body{font-family:-apple-system,'Segoe UI',sans-serif;background:#f8fafc;color:#1e293b;padding:24px}
h1{font-size:18px;font-weight:700;margin-bottom:4px}
.sub{font-size:12px;color:#64748b;margin-bottom:16px}
.chart-wrap{background:#fff;border:1px solid #e2e8f0;border-radius:8px;padding:16px;max-width:1100px}
.error{color:#b91c1c;padding:16px}
</style>
</head>
<body>
<h1>Work Pace</h1>
<div class="sub">Work time as a share of elapsed time, {{.StartHour}}:00&ndash;{{.EndHour}}:00 ({{.Timezone}})</div>
<div class="chart-wrap"><canvas id="paceChart"></canvas></div>
<script>
const startHour = {{.StartHour}};
const endHour = {{.EndHour}};

function tooltipLines(point) {
  const lines = ['Date: ' + point.date];
  switch (point.kind) {
    case 'initial':
      lines.push('Time: ' + point.startTime + ' (Start of day)');
      break;
    case 'gap':
      lines.push('Time: ' + point.startTime + ' (Gap)');
      break;
    case 'current':
      lines.push('Time: ' + point.startTime + ' (Current time)');
      break;
    case 'ongoing':
      lines.push('Time: ' + point.startTime + ' - still running');
      lines.push('Session: ' + (point.duration * 60).toFixed(0) + ' minutes so far');
      break;
    default:
      lines.push('Time: ' + point.startTime + ' - ' + point.endTime);
      lines.push('Session: ' + (point.duration * 60).toFixed(0) + ' minutes');
  }
  lines.push('Work / Elapsed: ' + point.y.toFixed(1) + '%');
  lines.push('Work Hours: ' + point.cumulative.toFixed(2));
  lines.push('Elapsed Hours: ' + point.elapsed.toFixed(2));
  return lines;
}

fetch('/api/trajectory')
  .then(response => {
    if (!response.ok) throw new Error('HTTP ' + response.status);
    return response.json();
  })
  .then(data => {
    const ctx = document.getElementById('paceChart').getContext('2d');
    new Chart(ctx, {
      type: 'scatter',
      data: {
        datasets: [
          {
            label: 'Historical',
            data: data.historical,
            showLine: false,
            backgroundColor: 'rgba(100, 149, 237, 0.6)',
            pointRadius: 3
          },
          {
            label: "Today",
            data: data.today,
            showLine: true,
            borderColor: 'rgba(34, 197, 94, 0.9)',
            backgroundColor: 'rgba(34, 197, 94, 0.9)',
            borderWidth: 4,
            pointRadius: ctx2 => {
              const p = ctx2.raw;
              if (p && (p.kind === 'current' || p.kind === 'ongoing')) return 5;
              return 3;
            }
          }
        ]
      },
      options: {
        scales: {
          x: {
            type: 'linear',
            min: startHour,
            max: endHour,
            title: { display: true, text: 'Time of Day' },
            ticks: { callback: value => value + ':00' }
          },
          y: {
            beginAtZero: true,
            max: 100,
            title: { display: true, text: 'Work Time / Elapsed Time (%)' }
          }
        },
        plugins: {
          tooltip: {
            callbacks: {
              label: context => tooltipLines(context.raw)
            }
          }
        }
      }
    });
  })
  .catch(err => {
    document.querySelector('.chart-wrap').innerHTML =
      '<div class="error">No data available: ' + err.message + '</div>';
  });
</script>
</body>
</html>
`
